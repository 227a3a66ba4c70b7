// Package settings parses and rewrites GCMODSETTINGS.MXML, the registry
// the game keeps of installed mods.
//
// The file is an MXML document: a Data root whose first top-level Property
// named "Data" holds one Property element per installed mod. Each mod entry
// carries an _index attribute and child properties such as Name and
// ModPriority. The game expects _index and ModPriority to stay contiguous,
// so removing an entry renumbers everything that survives.
//
// All mutations happen on the in-memory tree. Callers decide whether the
// canonical text produced by Canonical ever reaches disk.
package settings

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// Element and attribute names from the game's settings schema.
const (
	rootTag     = "Data"
	propertyTag = "Property"

	nameAttr  = "name"
	valueAttr = "value"
	indexAttr = "_index"

	dataPropertyName     = "Data"
	namePropertyName     = "Name"
	priorityPropertyName = "ModPriority"
)

var log = logging.GetLogger("settings")

// ModEntry is one mod's registration inside the settings document.
// Priority is -1 when the entry has no readable ModPriority property.
type ModEntry struct {
	Name     string
	Priority int
}

// Document is a parsed settings file held as a mutable element tree.
// Construct one with Load or Parse.
type Document struct {
	doc *etree.Document
}

// Load reads and parses the settings file at path.
func Load(fsys types.FS, path string) (*Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read settings file %s", path)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("mods", len(doc.Mods())).
		Msg("Settings file loaded")

	return doc, nil
}

// Parse parses raw MXML settings content.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "settings content is not valid XML")
	}

	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return nil, errors.Newf(errors.ErrParse, "settings root element must be <%s>", rootTag)
	}

	return &Document{doc: doc}, nil
}

// Mods lists the mod entries in document order. Entries without a Name
// property are skipped.
func (d *Document) Mods() []ModEntry {
	data := d.dataProperty()
	if data == nil {
		return nil
	}

	var mods []ModEntry
	for _, entry := range data.SelectElements(propertyTag) {
		name, ok := entryName(entry)
		if !ok {
			continue
		}
		mods = append(mods, ModEntry{Name: name, Priority: entryPriority(entry)})
	}
	return mods
}

// RemoveMod deletes every mod entry whose Name property matches name
// case-insensitively, then renumbers the surviving entries so that _index
// and ModPriority run 0..n-1 in document order. It returns the number of
// entries removed.
//
// Entries with no Name property, or a Name property with no value
// attribute, are never removed. Renumbering happens even when nothing
// matched, so a no-op removal still repairs non-contiguous indices.
func (d *Document) RemoveMod(name string) int {
	data := d.dataProperty()
	if data == nil {
		return 0
	}

	removed := 0
	for _, entry := range data.SelectElements(propertyTag) {
		candidate, ok := entryName(entry)
		if !ok || !strings.EqualFold(candidate, name) {
			continue
		}
		data.RemoveChild(entry)
		removed++
	}

	renumber(data)

	log.Debug().
		Str("mod", name).
		Int("removed", removed).
		Msg("Settings entries reconciled")

	return removed
}

// Canonical serializes the document the way the game lays the file out:
// a utf-8 XML declaration, two-space indentation, and no whitespace-only
// text nodes. Serializing an unchanged document yields byte-identical
// output, so callers can diff settings content safely.
func (d *Document) Canonical() (string, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	out.SetRoot(d.doc.Root().Copy())
	out.Indent(2)

	text, err := out.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to serialize settings document")
	}
	return text, nil
}

// dataProperty returns the first top-level Property named "Data", which
// holds the mod entries. The game writes exactly one.
func (d *Document) dataProperty() *etree.Element {
	for _, el := range d.doc.Root().SelectElements(propertyTag) {
		if el.SelectAttrValue(nameAttr, "") == dataPropertyName {
			return el
		}
	}
	return nil
}

// renumber rewrites _index and the first ModPriority property of every
// entry so both run contiguously from 0 in document order.
func renumber(data *etree.Element) {
	for i, entry := range data.SelectElements(propertyTag) {
		idx := strconv.Itoa(i)
		entry.CreateAttr(indexAttr, idx)
		for _, p := range entry.SelectElements(propertyTag) {
			if p.SelectAttrValue(nameAttr, "") == priorityPropertyName {
				p.CreateAttr(valueAttr, idx)
				break
			}
		}
	}
}

// entryName returns the value of the entry's first Name property. The
// second return is false when the entry has no Name property or the
// property carries no value attribute.
func entryName(entry *etree.Element) (string, bool) {
	for _, p := range entry.SelectElements(propertyTag) {
		if p.SelectAttrValue(nameAttr, "") != namePropertyName {
			continue
		}
		attr := p.SelectAttr(valueAttr)
		if attr == nil {
			return "", false
		}
		return attr.Value, true
	}
	return "", false
}

func entryPriority(entry *etree.Element) int {
	for _, p := range entry.SelectElements(propertyTag) {
		if p.SelectAttrValue(nameAttr, "") == priorityPropertyName {
			n, err := strconv.Atoi(p.SelectAttrValue(valueAttr, ""))
			if err != nil {
				return -1
			}
			return n
		}
	}
	return -1
}
