package model

const (
	DefaultBlockLimit = 10
	MinBlockLimit     = 1
	MaxBlockLimit     = 100
)

// Block declares a page section that lists one collection.
type Block struct {
	Slug       string `json:"slug"`
	Collection Slug   `json:"collection"`
	Labels     Labels `json:"labels"`
}

var blocks = []Block{
	{Slug: "experience", Collection: Experiences, Labels: Labels{Singular: "Experience", Plural: "Experiences"}},
	{Slug: "education", Collection: Educations, Labels: Labels{Singular: "Education", Plural: "Educations"}},
	{Slug: "skills", Collection: Skills, Labels: Labels{Singular: "Skills", Plural: "Skills"}},
	{Slug: "languages", Collection: Languages, Labels: Labels{Singular: "Languages", Plural: "Languages"}},
	{Slug: "learning", Collection: Learnings, Labels: Labels{Singular: "Learning", Plural: "Learnings"}},
}

// Blocks returns every block declaration.
func Blocks() []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

// LookupBlock finds a block by slug.
func LookupBlock(slug string) (Block, bool) {
	for _, b := range blocks {
		if b.Slug == slug {
			return b, true
		}
	}
	return Block{}, false
}

// BlockConfig is one configured instance of a block on a page.
type BlockConfig struct {
	BlockType string `yaml:"blockType" json:"blockType"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Limit     int    `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Normalize applies the block field defaults: limit 10, clamped to [1,100].
func (c BlockConfig) Normalize() BlockConfig {
	switch {
	case c.Limit == 0:
		c.Limit = DefaultBlockLimit
	case c.Limit < MinBlockLimit:
		c.Limit = MinBlockLimit
	case c.Limit > MaxBlockLimit:
		c.Limit = MaxBlockLimit
	}
	return c
}
