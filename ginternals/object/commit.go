package object

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/internal/readutil"
	"golang.org/x/xerrors"
)

// ErrSignatureInvalid is an error thrown when the signature of a commit
// couldn't be parsed
var ErrSignatureInvalid = errors.New("commit signature is invalid")

// ErrTooManyParents is an error thrown when a commit references more
// parents than the format allows
var ErrTooManyParents = errors.New("too many parents")

// MaxParents is the maximum amount of parents a commit may reference
const MaxParents = 16

// Signature represents the author/committer identity of a commit.
// The date is carried as an opaque string: the format only cares that
// it contains none of the structural delimiters.
type Signature struct {
	Name  string
	Email string
	Date  string
}

// String returns a stringified version of the Signature, as it appears
// in a commit payload
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %s", s.Name, s.Email, s.Date)
}

// IsZero returns whether the signature has Zero value
func (s Signature) IsZero() bool {
	return s.Name == "" && s.Email == "" && s.Date == ""
}

// Sanitize returns a copy of the signature with the structural
// delimiters of the commit format removed from every field
func (s Signature) Sanitize() Signature {
	return Signature{
		Name:  removeSpecial(s.Name),
		Email: removeSpecial(s.Email),
		Date:  removeSpecial(s.Date),
	}
}

// removeSpecial strips \n, <, and > which would break the line-oriented
// commit format
func removeSpecial(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '<', '>':
			return -1
		}
		return r
	}, s)
}

// NewSignatureFromBytes returns a signature from an array of bytes
//
// A signature has the following format:
// User Name <user.email@domain.tld> date string
func NewSignatureFromBytes(b []byte) (Signature, error) {
	sig := Signature{}

	// First we get the name, which is everything before " <"
	data := readutil.ReadTo(b, '<')
	if data == nil {
		return sig, xerrors.Errorf("couldn't retrieve the name: %w", ErrSignatureInvalid)
	}
	sig.Name = strings.TrimSuffix(string(data), " ")
	offset := len(data) + 1 // +1 to skip the "<"

	// Now we get the email, which is between "<" and ">"
	data = readutil.ReadTo(b[offset:], '>')
	if data == nil {
		return sig, xerrors.Errorf("couldn't retrieve the email: %w", ErrSignatureInvalid)
	}
	sig.Email = string(data)
	offset += len(data) + 1 // +1 to skip the ">"

	// Everything left, minus the separating space, is the date string
	if offset < len(b) && b[offset] == ' ' {
		offset++
	}
	sig.Date = string(b[offset:])
	return sig, nil
}

// Commit represents a commit object: a tree plus lineage and identity
// metadata
type Commit struct {
	rawObject *Object

	author    Signature
	committer Signature

	message string

	parentIDs []ginternals.Oid
	treeID    ginternals.Oid
}

// CommitOptions represents all the optional data available to create
// a commit
type CommitOptions struct {
	Message string
	// Committer represents the person creating the commit.
	// If not provided, the author will be used as committer
	Committer Signature
	ParentIDs []ginternals.Oid
}

// NewCommit creates a new Commit object.
// The provided Oids aren't checked.
func NewCommit(treeID ginternals.Oid, author Signature, opts *CommitOptions) (*Commit, error) {
	if len(opts.ParentIDs) > MaxParents {
		return nil, xerrors.Errorf("%d parents: %w", len(opts.ParentIDs), ErrTooManyParents)
	}

	c := &Commit{
		treeID:    treeID,
		author:    author.Sanitize(),
		committer: opts.Committer.Sanitize(),
		message:   opts.Message,
		parentIDs: opts.ParentIDs,
	}
	if c.committer.IsZero() {
		c.committer = c.author
	}
	return c, nil
}

// NewCommitFromObject creates a commit from a raw object
//
// A commit has following format:
//
// tree {sha}
// parent {sha}
// author {author_name} <{author_email}> {date}
// committer {committer_name} <{committer_email}> {date}
// {a blank line}
// {commit message}
//
// Note:
// - A commit can have 0 up to MaxParents parent lines, in a
//   significant order
func NewCommitFromObject(o *Object) (*Commit, error) {
	if o.typ != TypeCommit {
		return nil, xerrors.Errorf("type %s is not a commit: %w", o.typ, ErrObjectInvalid)
	}
	ci := &Commit{
		rawObject: o,
	}
	offset := 0
	objData := o.Bytes()
	for {
		line := readutil.ReadTo(objData[offset:], '\n')
		offset += len(line) + 1 // +1 to count the \n

		// If we didn't find anything then something is wrong
		if len(line) == 0 && offset == 1 {
			return nil, xerrors.Errorf("could not find commit first line: %w", ErrCommitInvalid)
		}

		// if we got an empty line, it means everything from now to the end
		// will be the commit message
		if len(line) == 0 {
			if offset < len(objData) {
				ci.message = string(objData[offset:])
			}
			break
		}

		// Otherwise we're getting a key/value pair, separated by a space
		kv := bytes.SplitN(line, []byte{' '}, 2)
		if len(kv) != 2 {
			return nil, xerrors.Errorf("invalid line %q: %w", line, ErrCommitInvalid)
		}
		var err error
		switch string(kv[0]) {
		case "tree":
			ci.treeID, err = ginternals.NewOidFromChars(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse tree id %q: %w", kv[1], err)
			}
		case "parent":
			oid, err := ginternals.NewOidFromChars(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse parent id %q: %w", kv[1], err)
			}
			if len(ci.parentIDs) == MaxParents {
				return nil, xerrors.Errorf("commit: %w", ErrTooManyParents)
			}
			ci.parentIDs = append(ci.parentIDs, oid)
		case "author":
			ci.author, err = NewSignatureFromBytes(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse author signature [%s]: %w", string(kv[1]), err)
			}
		case "committer":
			ci.committer, err = NewSignatureFromBytes(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse committer signature [%s]: %w", string(kv[1]), err)
			}
		}
	}

	// validate the commit
	if ci.author.IsZero() {
		return nil, xerrors.Errorf("commit has no author: %w", ErrCommitInvalid)
	}
	if ci.treeID.IsZero() {
		return nil, xerrors.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}

	return ci, nil
}

// ID returns the SHA of the commit object
func (c *Commit) ID() ginternals.Oid {
	return c.ToObject().ID()
}

// Author returns the Signature of the person that made the changes
func (c *Commit) Author() Signature {
	return c.author
}

// Committer returns the Signature of the person that created the commit
func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the commit's message
func (c *Commit) Message() string {
	return c.message
}

// ParentIDs returns the list of SHA of the parent commits (if any).
// The order is the order the parents were given in, and is part of the
// commit's identity.
func (c *Commit) ParentIDs() []ginternals.Oid {
	out := make([]ginternals.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// TreeID returns the SHA of the commit's tree
func (c *Commit) TreeID() ginternals.Oid {
	return c.treeID
}

// ToObject returns the underlying Object
func (c *Commit) ToObject() *Object {
	if c.rawObject != nil {
		return c.rawObject
	}

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	buf.WriteString("tree ")
	buf.WriteString(c.treeID.String())
	buf.WriteByte('\n')

	for _, p := range c.parentIDs {
		buf.WriteString("parent ")
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("author ")
	buf.WriteString(c.author.String())
	buf.WriteByte('\n')

	buf.WriteString("committer ")
	buf.WriteString(c.committer.String())
	buf.WriteByte('\n')

	buf.WriteByte('\n')

	buf.WriteString(c.message)

	c.rawObject = New(TypeCommit, buf.Bytes())
	return c.rawObject
}
