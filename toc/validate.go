package toc

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Resolver abstracts "does this content document exist, and under which
// supported extension". Implementations live outside this package - see the
// content package for directory and archive backed resolvers.
type Resolver interface {
	// Resolve returns the resolved location of the referenced document and
	// whether it exists.
	Resolve(ref string) (string, bool)
}

// Ref identifies the position of an entry within the document hierarchy.
type Ref struct {
	// Part is the owning part index; -1 for the root document and for
	// article-style sections.
	Part int
	// Caption is the owning part caption, empty when Part is -1.
	Caption string
	// Chapters is the index path from the part (or document top for
	// articles) down through nested sections. Empty for the root document.
	Chapters []int
}

func (r Ref) String() string {
	var sb strings.Builder
	if r.Part >= 0 {
		fmt.Fprintf(&sb, "parts[%d]", r.Part)
		if len(r.Caption) > 0 {
			fmt.Fprintf(&sb, " %q", r.Caption)
		}
	}
	if len(r.Chapters) == 0 {
		if sb.Len() == 0 {
			return "root"
		}
		return sb.String()
	}
	for i, idx := range r.Chapters {
		name := "sections"
		if i == 0 && r.Part >= 0 {
			name = "chapters"
		}
		if sb.Len() > 0 {
			sb.WriteString(" > ")
		}
		fmt.Fprintf(&sb, "%s[%d]", name, idx)
	}
	return sb.String()
}

// BrokenRef is a single content reference which did not resolve.
type BrokenRef struct {
	Ref  Ref
	Path string
}

// Result reports the outcome of a validation pass. Unresolved preserves
// document order; an empty slice means every reference resolved.
type Result struct {
	Checked    int
	Unresolved []BrokenRef
}

// Err converts the result into an error for callers which treat unresolved
// references as fatal. Returns nil when the result is clean.
func (r Result) Err() error {
	if len(r.Unresolved) == 0 {
		return nil
	}
	var err error
	for _, b := range r.Unresolved {
		err = multierr.Append(err, fmt.Errorf("%s: %q", b.Ref, b.Path))
	}
	return &UnresolvedReferenceError{Refs: r.Unresolved, err: err}
}

// Validate checks every file reference of the document (root first, then
// chapters and nested sections in document order) against resolver. It never
// fails fast - all broken references from a single pass are collected so one
// run reports the complete set. External url entries are skipped, they are
// not filesystem-resolvable. Whether a non-empty result aborts the build is
// the caller's policy, not ours.
func Validate(doc *Document, resolver Resolver) Result {
	var res Result

	check := func(path string, ref Ref) {
		res.Checked++
		if _, ok := resolver.Resolve(path); !ok {
			res.Unresolved = append(res.Unresolved, BrokenRef{Ref: ref, Path: path})
		}
	}

	check(doc.Root, Ref{Part: -1})

	var walk func(chapters []Chapter, ref Ref)
	walk = func(chapters []Chapter, ref Ref) {
		for i, ch := range chapters {
			cur := ref
			cur.Chapters = append(append([]int(nil), ref.Chapters...), i)
			if len(ch.File) > 0 {
				check(ch.File, cur)
			}
			walk(ch.Sections, cur)
		}
	}

	walk(doc.Sections, Ref{Part: -1})
	for pi, p := range doc.Parts {
		walk(p.Chapters, Ref{Part: pi, Caption: p.Caption})
	}
	return res
}
