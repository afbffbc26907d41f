package seed

import (
	"strings"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/richtext"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DaysAgo is the calendar date n days before the clock's current day, in UTC.
func DaysAgo(clock clockwork.Clock, n int) domain.Date {
	return domain.DateOf(clock.Now().UTC().AddDate(0, 0, -n))
}

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func lines(ls ...string) richtext.Document {
	return richtext.FromPlainText(strings.Join(ls, "\n"))
}

func Skills() []domain.Skill {
	skill := func(name string, level domain.SkillLevel, ctx domain.SkillContext) domain.Skill {
		return domain.Skill{Name: name, ProficiencyLevel: level, ContextOfUse: ctx}
	}
	return []domain.Skill{
		// frontend
		skill("HTML", domain.SkillExpert, domain.ContextProduction),
		skill("CSS", domain.SkillExpert, domain.ContextProduction),
		skill("JavaScript", domain.SkillExpert, domain.ContextProduction),
		skill("TypeScript", domain.SkillAdvanced, domain.ContextProduction),
		skill("React", domain.SkillExpert, domain.ContextProduction),
		skill("Next.js", domain.SkillAdvanced, domain.ContextProduction),
		skill("Tailwind CSS", domain.SkillExpert, domain.ContextProduction),
		skill("SCSS", domain.SkillAdvanced, domain.ContextProduction),
		skill("Vue.js", domain.SkillIntermediate, domain.ContextLabs),

		// backend
		skill("Node.js", domain.SkillAdvanced, domain.ContextProduction),
		skill("Express", domain.SkillAdvanced, domain.ContextProduction),
		skill("Python", domain.SkillIntermediate, domain.ContextStudy),
		skill("PostgreSQL", domain.SkillAdvanced, domain.ContextProduction),
		skill("MongoDB", domain.SkillIntermediate, domain.ContextLabs),

		// tooling
		skill("Git", domain.SkillExpert, domain.ContextProduction),
		skill("Docker", domain.SkillIntermediate, domain.ContextLabs),
		skill("AWS", domain.SkillIntermediate, domain.ContextProduction),

		// soft skills
		skill("Problem Solving", domain.SkillExpert, domain.ContextProduction),
		skill("Team Leadership", domain.SkillAdvanced, domain.ContextProduction),
		skill("Communication", domain.SkillExpert, domain.ContextProduction),
	}
}

// Experiences builds the roles with dates relative to clock. Technologies are
// looked up by skill name in skillIDs; names with no id are dropped.
func Experiences(skillIDs map[string]uuid.UUID, clock clockwork.Clock) []domain.Experience {
	techs := func(names ...string) []domain.SkillRef {
		var out []domain.SkillRef
		for _, n := range names {
			if id, ok := skillIDs[n]; ok {
				out = append(out, domain.RefTo(id))
			}
		}
		return out
	}
	end := func(days int) *domain.Date {
		d := DaysAgo(clock, days)
		return &d
	}

	return []domain.Experience{
		{
			RoleTitle:   "Senior Frontend Developer",
			CompanyName: "DataFlow Inc.",
			StartDate:   DaysAgo(clock, 200),
			IsCurrent:   true,
			Location:    "San Francisco, CA",
			Context:     "Leading frontend architecture and mentoring junior developers",
			Responsibilities: lines(
				"Led the design and implementation of React component architecture for 3+ major product features, improving code reusability by 40%.",
				"Implemented TypeScript strict mode across 500+ components, reducing runtime errors by 35%.",
				"Mentored 2 junior developers on Next.js best practices, progressive enhancement, and performance optimization.",
				"Collaborated with design team to implement pixel-perfect UI using Tailwind CSS with accessibility standards (WCAG 2.1).",
				"Established frontend testing standards using Vitest, achieving 80% code coverage across the team.",
				"Optimized bundle size through code splitting and lazy loading, reducing initial load time by 45%.",
			),
			Technologies: techs("React", "TypeScript", "Next.js", "Tailwind CSS", "JavaScript", "Git", "Problem Solving", "Team Leadership"),
		},
		{
			RoleTitle:   "Full Stack Developer",
			CompanyName: "TechCorp Solutions",
			StartDate:   DaysAgo(clock, 850),
			EndDate:     end(200),
			Location:    "New York, NY",
			Context:     "Full stack development for e-commerce platform serving 100K+ users",
			Responsibilities: lines(
				"Developed and maintained full-stack features for a high-traffic e-commerce platform using React and Node.js.",
				"Built RESTful APIs with Express.js and PostgreSQL, handling 10K+ requests per day with 99.9% uptime.",
				"Implemented real-time features using WebSockets for order tracking and inventory management.",
				"Optimized database queries, reducing API response time from 800ms to 150ms.",
				"Created comprehensive API documentation and mentored 3 developers on backend best practices.",
				"Implemented CI/CD pipelines using Git and Docker for automated testing and deployment.",
			),
			Technologies: techs("React", "Node.js", "Express", "PostgreSQL", "JavaScript", "Docker", "Git", "Communication"),
		},
		{
			RoleTitle:   "Frontend Developer",
			CompanyName: "Creative Studios",
			StartDate:   DaysAgo(clock, 1500),
			EndDate:     end(850),
			Location:    "Austin, TX",
			Context:     "Frontend development for design-focused web applications",
			Responsibilities: lines(
				"Developed responsive web interfaces using React and CSS, supporting 50+ client projects.",
				"Converted Figma designs to pixel-perfect HTML/CSS components with accessibility compliance.",
				"Implemented component library documentation with Storybook for 80+ reusable components.",
				"Improved website performance by 55% through lazy loading and code optimization.",
				"Collaborated with 5+ designers to establish design system and component guidelines.",
			),
			Technologies: techs("React", "HTML", "CSS", "SCSS", "JavaScript", "Tailwind CSS", "Git"),
		},
		{
			RoleTitle:   "Junior Developer",
			CompanyName: "StartUp Ventures",
			StartDate:   DaysAgo(clock, 2200),
			EndDate:     end(1500),
			Location:    "Boston, MA",
			Context:     "Entry-level development work on internal tools and MVP projects",
			Responsibilities: lines(
				"Built UI components using HTML, CSS, and vanilla JavaScript for multiple internal tools.",
				"Participated in code reviews and learned best practices from senior developers.",
				"Assisted in debugging and fixing production issues, resulting in faster incident resolution.",
				"Learned React fundamentals and contributed to 2 React-based projects from ground up.",
				"Documented code and wrote basic unit tests for assigned components.",
			),
			Technologies: techs("HTML", "CSS", "JavaScript", "React", "Git", "Problem Solving"),
		},
		{
			RoleTitle:   "Backend Engineer",
			CompanyName: "FinTech Platform",
			StartDate:   DaysAgo(clock, 950),
			EndDate:     end(500),
			Location:    "Seattle, WA",
			Context:     "Backend services for financial transaction processing",
			Responsibilities: lines(
				"Designed and implemented microservices architecture using Node.js and Express for payment processing.",
				"Developed PostgreSQL schemas supporting 1M+ transactions with ACID compliance.",
				"Implemented API rate limiting and security measures protecting against DDoS attacks.",
				"Wrote 200+ automated tests achieving 85% code coverage.",
				"Reduced transaction processing time by 60% through database optimization.",
				"Collaborated with frontend team to define API contracts and integration points.",
			),
			Technologies: techs("Node.js", "Express", "PostgreSQL", "TypeScript", "Docker", "AWS", "Git"),
		},
	}
}

func Educations() []domain.Education {
	opt := func(s string) *domain.Date {
		d := date(s)
		return &d
	}
	desc := func(ls ...string) *richtext.Document {
		d := lines(ls...)
		return &d
	}
	return []domain.Education{
		{
			Type:        domain.EducationDegree,
			Title:       "Bachelor of Science in Computer Science",
			Institution: "University of California, Berkeley",
			Location:    "Berkeley, CA",
			StartDate:   date("2016-08-15"),
			EndDate:     opt("2020-05-20"),
			Status:      domain.StatusCompleted,
			Description: desc(
				"Completed a rigorous 4-year program focusing on software engineering, data structures, and algorithms.",
				"Coursework included: Data Structures, Operating Systems, Artificial Intelligence, Web Development, and Database Systems.",
				"Participated in student-led projects and hackathons, winning 1st place at TechVision Hackathon 2019.",
				"Maintained 3.7 GPA and graduated with honors.",
			),
		},
		{
			Type:        domain.EducationCertification,
			Title:       "AWS Certified Solutions Architect - Associate",
			Institution: "Amazon Web Services",
			Location:    "Online",
			StartDate:   date("2022-03-01"),
			EndDate:     opt("2023-06-15"),
			Status:      domain.StatusCompleted,
			Description: desc(
				"Completed comprehensive AWS training covering EC2, S3, RDS, Lambda, and CloudFormation.",
				"Learned cloud architecture best practices, scalability, and high availability design patterns.",
				"Passed AWS Solutions Architect - Associate exam with a score of 850/1000.",
				"Studied AWS Well-Architected Framework and implemented learnings in production environments.",
			),
		},
		{
			Type:        domain.EducationCertification,
			Title:       "React Advanced Patterns & Best Practices",
			Institution: "Frontend Masters",
			Location:    "Online",
			StartDate:   date("2021-06-01"),
			EndDate:     opt("2021-12-30"),
			Status:      domain.StatusCompleted,
			Description: desc(
				"In-depth course on advanced React patterns including hooks, context API, and performance optimization.",
				"Learned about render optimization, code splitting, and modern React architecture.",
				"Built 5+ complex React applications applying course concepts.",
				"Mastered testing strategies using React Testing Library and Jest.",
			),
		},
		{
			Type:        domain.EducationCertification,
			Title:       "Full Stack Web Development Bootcamp",
			Institution: "General Assembly",
			Location:    "San Francisco, CA",
			StartDate:   date("2015-01-15"),
			EndDate:     opt("2015-04-10"),
			Status:      domain.StatusCompleted,
			Description: desc(
				"Intensive 12-week bootcamp covering HTML, CSS, JavaScript, Node.js, Express, and MongoDB.",
				"Collaborated on group projects building full-stack applications from design to deployment.",
				"Completed capstone project: a social media platform for photographers with 15+ features.",
			),
		},
	}
}

func Languages() []domain.Language {
	return []domain.Language{
		{Name: "English", Level: domain.LevelNative, Context: "Professional work and everyday communication"},
		{Name: "Spanish", Level: domain.LevelFluent, Context: "Professional projects and personal development"},
		{Name: "French", Level: domain.LevelBusiness, Context: "International business communications"},
		{Name: "German", Level: domain.LevelConversational, Context: "Travel and hobby learning"},
		{Name: "Portuguese", Level: domain.LevelBasic, Context: "Personal interest and hobby"},
	}
}

func Learnings() []domain.Learning {
	return []domain.Learning{
		{
			Title:      "Epic React",
			Source:     "epicreact.dev",
			Instructor: "Kent C. Dodds",
			Duration:   "60 hours",
			Link:       "https://www.epicreact.dev",
		},
		{
			Title:      "Complete Intro to Containers",
			Source:     "Frontend Masters",
			Instructor: "Brian Holt",
			Duration:   "4 hours",
			Link:       "https://frontendmasters.com/courses/complete-intro-containers/",
		},
		{
			Title:    "Designing Data-Intensive Applications",
			Source:   "O'Reilly",
			Duration: "Book",
		},
		{
			Title:  "PostgreSQL Performance Tuning",
			Source: "Internal workshop",
		},
	}
}

// Reference is a fixed instant for deterministic fixtures in tools and tests.
var Reference = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
