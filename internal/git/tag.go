package git

import (
	"context"
)

// TagListOptions optionally filters tags by a glob pattern.
type TagListOptions struct {
	Pattern string
}

// TagListResult lists tag names in version-unaware lexical order.
type TagListResult struct {
	Tags []string
}

// TagCreateOptions names the tag to create. A non-empty Message makes an
// annotated tag; otherwise the tag is lightweight.
type TagCreateOptions struct {
	Name    string
	Ref     string
	Message string
	// Force replaces an existing tag of the same name.
	Force bool
}

// TagDeleteOptions names the tag to delete.
type TagDeleteOptions struct {
	Name string
}

// ListTags lists tags, optionally matching a pattern.
func (s *Service) ListTags(ctx context.Context, ec ExecutionContext, opts TagListOptions) (TagListResult, error) {
	args := []string{"tag", "--list"}
	if opts.Pattern != "" {
		args = append(args, opts.Pattern)
	}

	return cachedRead(ctx, s, ec, "tag_list", args, func(raw RawResult) TagListResult {
		return TagListResult{Tags: splitLines(raw.Stdout)}
	})
}

// CreateTag creates a tag at HEAD or at the given ref.
func (s *Service) CreateTag(ctx context.Context, ec ExecutionContext, opts TagCreateOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "tag_create", err)
	}
	if opts.Ref != "" {
		if err := validateRef("ref", opts.Ref); err != nil {
			return s.reject(ec, "tag_create", err)
		}
	}

	args := []string{"tag"}
	if opts.Force {
		args = append(args, "-f")
	}
	if opts.Message != "" {
		// The message travels as a single argv token, never shell-quoted.
		args = append(args, "-a", "-m", opts.Message)
	}
	args = append(args, opts.Name)
	if opts.Ref != "" {
		args = append(args, opts.Ref)
	}

	if _, err := s.execute(ctx, ec, "tag_create", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// DeleteTag deletes a local tag.
func (s *Service) DeleteTag(ctx context.Context, ec ExecutionContext, opts TagDeleteOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "tag_delete", err)
	}

	if _, err := s.execute(ctx, ec, "tag_delete", true, "tag", "-d", opts.Name); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
