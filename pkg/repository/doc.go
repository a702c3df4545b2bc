// Package repository turns repository addresses into fetchable URLs.
//
// Package manifests declare their source repository in several dialects:
// service shorthands ("github:owner/repo"), ssh URLs carrying credentials
// ("git+ssh://git@host:owner/repo.git"), the bare git protocol
// ("git://host/repo.git") and plain https URLs. [Normalize] rewrites the
// first three into https URLs and leaves anything else untouched.
//
// Two behaviours are kept for compatibility with existing manifests and
// scripts even though they look accidental:
//
//   - the gist shorthand expands to the host gist.gist.com;
//   - [DirName] removes the first ".git" found anywhere in the last path
//     segment, not only a trailing suffix.
package repository
