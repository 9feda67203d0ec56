// Package tagset defines the grammatical category codes carried by tokens.
//
// A Tag is a small integer. The high nibble of its low byte names the coarse
// group (VERB, NOUN, NAME...), the low nibble refines it (AUX, NAMEpers...).
// Group() drops the refinement, so every fine code can be compared with its
// group code.
package tagset

import "strings"

// Tag is a grammatical category code.
type Tag uint16

const (
	Unknown Tag = 0x00

	Verb         Tag = 0x10
	VerbAux      Tag = 0x11
	VerbPartPast Tag = 0x12
	VerbPartPres Tag = 0x13

	Noun Tag = 0x20

	Adj Tag = 0x30

	Adv Tag = 0x40

	Det      Tag = 0x50
	DetArt   Tag = 0x51
	DetDem   Tag = 0x52
	DetPoss  Tag = 0x53
	DetIndef Tag = 0x54

	Pron      Tag = 0x60
	PronPers  Tag = 0x61
	PronRel   Tag = 0x62
	PronDem   Tag = 0x63
	PronIndef Tag = 0x64
	PronInt   Tag = 0x65

	Prep Tag = 0x70

	Conj      Tag = 0x80
	ConjCoord Tag = 0x81
	ConjSub   Tag = 0x82

	Name      Tag = 0x90
	NamePers  Tag = 0x91
	NamePlace Tag = 0x92
	NameOrg   Tag = 0x93
	NameEvent Tag = 0x94
	NameFict  Tag = 0x95

	Num    Tag = 0xA0
	NumOrd Tag = 0xA1

	Excl Tag = 0xB0

	Pun        Tag = 0xC0
	PunClause  Tag = 0xC1
	PunSent    Tag = 0xC2
	PunPara    Tag = 0xC3
	PunSection Tag = 0xC4

	Mark Tag = 0xD0

	Abbr Tag = 0xE0
)

var labels = map[Tag]string{
	Unknown:      "UNKNOWN",
	Verb:         "VERB",
	VerbAux:      "AUX",
	VerbPartPast: "VERBppas",
	VerbPartPres: "VERBppres",
	Noun:         "NOUN",
	Adj:          "ADJ",
	Adv:          "ADV",
	Det:          "DET",
	DetArt:       "DETart",
	DetDem:       "DETdem",
	DetPoss:      "DETposs",
	DetIndef:     "DETindef",
	Pron:         "PRON",
	PronPers:     "PRONpers",
	PronRel:      "PRONrel",
	PronDem:      "PRONdem",
	PronIndef:    "PRONindef",
	PronInt:      "PRONint",
	Prep:         "ADP",
	Conj:         "CONJ",
	ConjCoord:    "CCONJ",
	ConjSub:      "SCONJ",
	Name:         "NAME",
	NamePers:     "NAMEpers",
	NamePlace:    "NAMEplace",
	NameOrg:      "NAMEorg",
	NameEvent:    "NAMEevent",
	NameFict:     "NAMEfict",
	Num:          "NUM",
	NumOrd:       "NUMord",
	Excl:         "INTJ",
	Pun:          "PUN",
	PunClause:    "PUNclause",
	PunSent:      "PUNsent",
	PunPara:      "PUNpara",
	PunSection:   "PUNsection",
	Mark:         "MARK",
	Abbr:         "ABBR",
}

// aliases are labels emitted by common taggers (Universal Dependencies and
// older French tagsets) that map onto a native code.
var aliases = map[string]Tag{
	"PROPN":  Name,
	"PUNCT":  Pun,
	"PREP":   Prep,
	"SUB":    Noun,
	"ADJQ":   Adj,
	"PRO":    Pron,
	"INTERJ": Excl,
}

var byLabel map[string]Tag

func init() {
	byLabel = make(map[string]Tag, len(labels)+len(aliases))
	for tag, label := range labels {
		byLabel[label] = tag
	}
	for label, tag := range aliases {
		byLabel[label] = tag
	}
	delete(byLabel, labels[Unknown])
}

// Parse returns the tag for a label. Labels are matched exactly first, then
// case-insensitively on the coarse labels. Unknown labels report false.
func Parse(label string) (Tag, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Unknown, false
	}
	if t, ok := byLabel[label]; ok {
		return t, true
	}
	if t, ok := byLabel[strings.ToUpper(label)]; ok {
		return t, true
	}
	return Unknown, false
}

// Group returns the coarse category of the tag.
func (t Tag) Group() Tag {
	return t & 0xFFF0
}

// Label returns the native label of the tag.
func (t Tag) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	if l, ok := labels[t.Group()]; ok {
		return l
	}
	return labels[Unknown]
}

// GroupLabel returns the label of the coarse group, used as the suffix of
// composite dictionary keys.
func (t Tag) GroupLabel() string {
	return t.Group().Label()
}

func (t Tag) String() string { return t.Label() }

func (t Tag) IsVerb() bool { return t.Group() == Verb }
func (t Tag) IsName() bool { return t.Group() == Name }
func (t Tag) IsPun() bool  { return t.Group() == Pun }
func (t Tag) IsNum() bool  { return t.Group() == Num }
