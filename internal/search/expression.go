// Package search builds tenant search-expression strings.
//
// Expression is a fluent-style builder for full text search, predicated
// search and ranges, combinable with boolean operators. Every method returns
// a new Expression, so filters chain without mutating their receiver;
// chained filters combine with AND.
package search

import (
	"fmt"
	"strings"
)

// Ranged predicates allow ranged values.
const (
	FileModification = "mt"
	IPTCCreationTime = "it"
	ReleasedTime     = "rt"
	CameraTime       = "ct"
	FileSize         = "fs"
	PixelHeight      = "ph"
	PixelWidth       = "pw"
)

// Special predicates map to special file properties.
const (
	FileName         = "fn"
	DirectoryName    = "dn"
	FullFilePath     = "fp"
	AssetType        = "dt"
	ImageOrientation = "o"
	ColorSpace       = "cs"
)

type node interface {
	render() string
}

// value is a terminal, quoted when it contains whitespace.
type value string

func (v value) render() string {
	if strings.ContainsAny(string(v), " \t") {
		return fmt.Sprintf("%q", string(v))
	}
	return string(v)
}

type fieldEq struct {
	field string
	val   node
}

func (f fieldEq) render() string {
	return f.field + ":" + f.val.render()
}

type valRange struct {
	from, to value
}

func (r valRange) render() string {
	return r.from.render() + "~~" + r.to.render()
}

type not struct {
	arg node
}

func (n not) render() string {
	return fmt.Sprintf("NOT ( %s )", n.arg.render())
}

type binary struct {
	op       string
	lhs, rhs node
}

func (b binary) render() string {
	return fmt.Sprintf("( %s ) %s ( %s )", b.lhs.render(), b.op, b.rhs.render())
}

// Expression is an immutable search expression under construction.
type Expression struct {
	root node
}

// New returns an empty expression.
func New() Expression {
	return Expression{}
}

// add combines a new term into the expression with AND.
func (e Expression) add(n node) Expression {
	if e.root == nil {
		return Expression{root: n}
	}
	return Expression{root: binary{op: "AND", lhs: e.root, rhs: n}}
}

// Fts searches across all metadata (full text search), including document
// running text, like in a PDF file.
func (e Expression) Fts(text string) Expression {
	return e.add(value(text))
}

// Eq matches a field against a value. Wildcards pass through unescaped.
func (e Expression) Eq(field, val string) Expression {
	return e.add(fieldEq{field: field, val: value(val)})
}

// Empty matches assets whose field carries no value. The index manager must
// index empty values for the field, otherwise results may be incomplete.
func (e Expression) Empty(field string) Expression {
	return e.add(fieldEq{field: field, val: value("")})
}

// Range matches a ranged predicate between from and to, inclusive.
func (e Expression) Range(field, from, to string) Expression {
	return e.add(fieldEq{field: field, val: valRange{from: value(from), to: value(to)}})
}

// And combines two expressions explicitly.
func (e Expression) And(other Expression) Expression {
	if e.root == nil {
		return other
	}
	if other.root == nil {
		return e
	}
	return Expression{root: binary{op: "AND", lhs: e.root, rhs: other.root}}
}

// Or combines two expressions with OR.
func (e Expression) Or(other Expression) Expression {
	if e.root == nil {
		return other
	}
	if other.root == nil {
		return e
	}
	return Expression{root: binary{op: "OR", lhs: e.root, rhs: other.root}}
}

// Not negates the whole expression.
func (e Expression) Not() Expression {
	if e.root == nil {
		return e
	}
	return Expression{root: not{arg: e.root}}
}

// String renders the tenant search-expression syntax.
func (e Expression) String() string {
	if e.root == nil {
		return ""
	}
	return e.root.render()
}
