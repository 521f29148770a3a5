// Package ledger holds the logical model shown by ltree: wallets, their
// accounts and addresses, loaded from YAML or TOML and kept in observable child
// lists that a mirror can follow.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rileyhilliard/ltree/internal/errors"
	"gopkg.in/yaml.v3"
)

// ID identifies an entry. IDs are the logical values of the tree.
type ID string

// RootID is the synthetic entry whose children are the top-level wallets.
const RootID ID = "/"

// Kind classifies an entry.
type Kind string

const (
	KindRoot    Kind = "root"
	KindWallet  Kind = "wallet"
	KindAccount Kind = "account"
	KindAddress Kind = "address"
)

// defaultKinds maps nesting depth to the kind assumed when none is given.
var defaultKinds = []Kind{KindWallet, KindAccount, KindAddress}

// Entry is one node of the ledger.
type Entry struct {
	ID      ID
	Label   string
	Kind    Kind
	Balance int64 // satoshis
	Note    string
}

// Snapshot is a parsed ledger file: every entry plus each parent's ordered
// child IDs. Top-level entries are the children of RootID.
type Snapshot struct {
	Name     string
	Entries  map[ID]Entry
	Children map[ID][]ID
}

// CurrentFileVersion is the ledger file schema version.
const CurrentFileVersion = 1

type fileLedger struct {
	Version int         `yaml:"version" toml:"version"`
	Name    string      `yaml:"name" toml:"name"`
	Entries []fileEntry `yaml:"entries" toml:"entries"`
}

type fileEntry struct {
	ID       string      `yaml:"id" toml:"id"`
	Label    string      `yaml:"label" toml:"label"`
	Kind     string      `yaml:"kind" toml:"kind"`
	Balance  int64       `yaml:"balance" toml:"balance"`
	Note     string      `yaml:"note" toml:"note"`
	Children []fileEntry `yaml:"children" toml:"children"`
}

// Load reads and parses the ledger file at path. Files ending in .toml are
// read as TOML, everything else as YAML.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrLedger,
				"Ledger file not found: "+path,
				"Pass a ledger path, or set 'ledger' in .ltree.yaml")
		}
		return nil, errors.WrapWithCode(err, errors.ErrLedger,
			"Can't read ledger file: "+path,
			"Check the file permissions")
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	snap, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid ledger file: "+path)
	}
	return snap, nil
}

// Parse decodes ledger YAML and validates it.
func Parse(data []byte) (*Snapshot, error) {
	var doc fileLedger
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLedger,
			"Ledger YAML doesn't parse",
			"Check indentation and that every entry has an 'id'")
	}
	return fromFile(doc)
}

// ParseTOML decodes a ledger written as TOML, with entries as arrays of
// tables ([[entries]], [[entries.children]]).
func ParseTOML(data []byte) (*Snapshot, error) {
	var doc fileLedger
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLedger,
			"Ledger TOML doesn't parse",
			"Check that every entry is a [[entries]] or [[...children]] table with an 'id'")
	}
	return fromFile(doc)
}

func fromFile(doc fileLedger) (*Snapshot, error) {
	if doc.Version > CurrentFileVersion {
		return nil, errors.New(errors.ErrLedger,
			fmt.Sprintf("Ledger file version %d is newer than supported (%d)", doc.Version, CurrentFileVersion),
			"Upgrade ltree")
	}

	snap := &Snapshot{
		Name:     doc.Name,
		Entries:  make(map[ID]Entry),
		Children: make(map[ID][]ID),
	}
	if snap.Name == "" {
		snap.Name = "ledger"
	}

	type pending struct {
		parent ID
		depth  int
		items  []fileEntry
	}
	queue := []pending{{parent: RootID, items: doc.Entries}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, fe := range p.items {
			e, err := toEntry(fe, p.depth)
			if err != nil {
				return nil, err
			}
			if _, dup := snap.Entries[e.ID]; dup {
				return nil, errors.New(errors.ErrLedger,
					fmt.Sprintf("Duplicate entry id %q", e.ID),
					"Every entry id must be unique across the whole ledger")
			}
			snap.Entries[e.ID] = e
			snap.Children[p.parent] = append(snap.Children[p.parent], e.ID)
			if len(fe.Children) > 0 {
				queue = append(queue, pending{parent: e.ID, depth: p.depth + 1, items: fe.Children})
			}
		}
	}
	return snap, nil
}

func toEntry(fe fileEntry, depth int) (Entry, error) {
	id := strings.TrimSpace(fe.ID)
	if id == "" {
		return Entry{}, errors.New(errors.ErrLedger,
			"Entry without an id",
			"Give every entry an 'id' field")
	}
	if ID(id) == RootID {
		return Entry{}, errors.New(errors.ErrLedger,
			fmt.Sprintf("Entry id %q is reserved", id),
			"Pick another id")
	}

	kind := Kind(fe.Kind)
	if kind == "" {
		kind = defaultKinds[min(depth, len(defaultKinds)-1)]
	}
	switch kind {
	case KindWallet, KindAccount, KindAddress:
	default:
		return Entry{}, errors.New(errors.ErrLedger,
			fmt.Sprintf("Entry %q has unknown kind %q", id, fe.Kind),
			"Use wallet, account, or address")
	}
	if fe.Balance < 0 {
		return Entry{}, errors.New(errors.ErrLedger,
			fmt.Sprintf("Entry %q has a negative balance", id),
			"Balances are in satoshis and can't be negative")
	}

	label := fe.Label
	if label == "" {
		label = id
	}
	return Entry{ID: ID(id), Label: label, Kind: kind, Balance: fe.Balance, Note: fe.Note}, nil
}
