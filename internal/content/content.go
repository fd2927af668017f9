// Package content loads the landing page copy from YAML. Fields documented as markdown are
// rendered once at load time so templates only ever see trusted HTML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Content is the whole landing page.
type Content struct {
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	Nav          []NavLink    `yaml:"nav"`
	Hero         Hero         `yaml:"hero"`
	Services     Services     `yaml:"services"`
	Process      Process      `yaml:"process"`
	Impact       Impact       `yaml:"impact"`
	Testimonials Testimonials `yaml:"testimonials"`
	FAQ          FAQ          `yaml:"faq"`
	CTA          CTA          `yaml:"cta"`
}

// NavLink points at a section id.
type NavLink struct {
	Label   string `yaml:"label"`
	Section string `yaml:"section"`
}

type Hero struct {
	Headline string `yaml:"headline"`
	// Lead is markdown.
	Lead     string        `yaml:"lead"`
	LeadHTML template.HTML `yaml:"-"`
	Action   string        `yaml:"action"`
}

type Card struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Services struct {
	Heading string `yaml:"heading"`
	Cards   []Card `yaml:"cards"`
}

type Process struct {
	Heading string `yaml:"heading"`
	Steps   []Card `yaml:"steps"`
}

// Stat is an animated counter. Value is the integer the counter lands on.
type Stat struct {
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
	Label  string `yaml:"label"`
}

type Impact struct {
	Heading string `yaml:"heading"`
	Stats   []Stat `yaml:"stats"`
}

type Testimonial struct {
	// Quote is markdown.
	Quote     string        `yaml:"quote"`
	QuoteHTML template.HTML `yaml:"-"`
	Author    string        `yaml:"author"`
	Location  string        `yaml:"location"`
}

type Testimonials struct {
	Heading string `yaml:"heading"`
	// IntervalMS overrides the carousel autoplay interval; zero keeps the default.
	IntervalMS int           `yaml:"interval_ms"`
	Quotes     []Testimonial `yaml:"quotes"`
}

type Question struct {
	Question string `yaml:"question"`
	// Answer is markdown.
	Answer     string        `yaml:"answer"`
	AnswerHTML template.HTML `yaml:"-"`
}

type FAQ struct {
	Heading   string     `yaml:"heading"`
	Questions []Question `yaml:"questions"`
}

type CTA struct {
	Heading string `yaml:"heading"`
	Copy    string `yaml:"copy"`
	Submit  string `yaml:"submit"`
}

// Load reads and renders the content file at path.
func Load(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Decode parses YAML content, rejecting unknown keys, then validates and renders it.
func Decode(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content is empty")
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.render(newMarkdown()); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values the page scripts depend on.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title is required")
	}
	for i, link := range c.Nav {
		if strings.TrimSpace(link.Section) == "" {
			return fmt.Errorf("nav[%d]: section is required", i)
		}
	}
	for i, stat := range c.Impact.Stats {
		if stat.Value < 0 {
			return fmt.Errorf("impact.stats[%d]: value must be non-negative", i)
		}
	}
	if c.Testimonials.IntervalMS < 0 {
		return errors.New("testimonials.interval_ms must be non-negative")
	}
	return nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Typographer, extension.Linkify))
}

func (c *Content) render(md goldmark.Markdown) error {
	var err error
	if c.Hero.LeadHTML, err = markdown(md, c.Hero.Lead); err != nil {
		return fmt.Errorf("hero.lead: %w", err)
	}
	for i := range c.Testimonials.Quotes {
		q := &c.Testimonials.Quotes[i]
		if q.QuoteHTML, err = markdown(md, q.Quote); err != nil {
			return fmt.Errorf("testimonials.quotes[%d]: %w", i, err)
		}
	}
	for i := range c.FAQ.Questions {
		q := &c.FAQ.Questions[i]
		if q.AnswerHTML, err = markdown(md, q.Answer); err != nil {
			return fmt.Errorf("faq.questions[%d]: %w", i, err)
		}
	}
	return nil
}

func markdown(md goldmark.Markdown, src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
