package prospect

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/pixil98/go-prospect/internal/property"
)

const (
	pathMembers = "ProspectInfo.AssociatedMembers"

	fieldMembers  = "AssociatedMembers"
	fieldUserID   = "UserID"
	fieldSlot     = "ChrSlot"
	keyAccount    = "AccountName"
	keyCharacter  = "CharacterName"
	keyExperience = "Experience"
)

// Member is one entry of the header's membership list.
type Member struct {
	AccountName   string
	CharacterName string
	UserID        string
	Slot          int
	Experience    int64
}

// MemberMatcher reports whether the member with the given user id and slot
// should be removed.
type MemberMatcher func(userID string, slot int) bool

// Members returns the header's membership list.
func (p *Prospect) Members() []Member {
	var out []Member
	gjson.GetBytes(p.header, pathMembers).ForEach(func(_, v gjson.Result) bool {
		out = append(out, Member{
			AccountName:   v.Get(keyAccount).String(),
			CharacterName: v.Get(keyCharacter).String(),
			UserID:        v.Get(fieldUserID).String(),
			Slot:          int(v.Get(fieldSlot).Int()),
			Experience:    v.Get(keyExperience).Int(),
		})
		return true
	})
	return out
}

// MembersRemoved counts the entries dropped from each membership list.
type MembersRemoved struct {
	Header int
	Blob   int
}

// RemoveMembers drops every matching member from both the header list and
// the binary list. Both lists are filtered before either is written, so an
// error leaves the prospect untouched.
func (p *Prospect) RemoveMembers(match MemberMatcher) (MembersRemoved, error) {
	header, headerRemoved, err := p.headerWithout(match)
	if err != nil {
		return MembersRemoved{}, err
	}
	blob, blobRemoved, err := p.blobWithout(match)
	if err != nil {
		return MembersRemoved{}, err
	}

	if headerRemoved > 0 {
		p.header = header
	}
	if blobRemoved > 0 {
		p.blob.Fields = p.blob.Fields.Replace(blob)
	}
	return MembersRemoved{Header: headerRemoved, Blob: blobRemoved}, nil
}

// headerWithout returns the header with matching members dropped. Kept
// entries are written back verbatim.
func (p *Prospect) headerWithout(match MemberMatcher) ([]byte, int, error) {
	list := gjson.GetBytes(p.header, pathMembers)
	if !list.Exists() {
		return nil, 0, nil
	}
	if !list.IsArray() {
		return nil, 0, fmt.Errorf("%w: %s is not a list", ErrInvalidProspect, pathMembers)
	}

	var kept [][]byte
	removed := 0
	list.ForEach(func(_, v gjson.Result) bool {
		if match(v.Get(fieldUserID).String(), int(v.Get(fieldSlot).Int())) {
			removed++
			return true
		}
		kept = append(kept, []byte(v.Raw))
		return true
	})
	if removed == 0 {
		return nil, 0, nil
	}

	raw := append([]byte{'['}, bytes.Join(kept, []byte{','})...)
	raw = append(raw, ']')

	header, err := sjson.SetRawBytes(p.header, pathMembers, raw)
	if err != nil {
		return nil, 0, fmt.Errorf("writing %s: %w", pathMembers, err)
	}
	return header, removed, nil
}

// BlobMembers returns the user id and slot of every entry of the binary
// membership array. A save without one has no members.
func (p *Prospect) BlobMembers() ([]Member, error) {
	a, err := p.blobMembers()
	if err != nil || a == nil {
		return nil, err
	}

	out := make([]Member, 0, a.Len())
	for i, e := range a.Elems {
		m, err := blobMember(e)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", fieldMembers, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// blobWithout returns a copy of the binary membership property without the
// matching entries.
func (p *Prospect) blobWithout(match MemberMatcher) (*property.Property, int, error) {
	a, err := p.blobMembers()
	if err != nil || a == nil {
		return nil, 0, err
	}

	drop := make(map[int]bool)
	for i, e := range a.Elems {
		m, err := blobMember(e)
		if err != nil {
			return nil, 0, fmt.Errorf("%s %d: %w", fieldMembers, i, err)
		}
		if match(m.UserID, m.Slot) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return nil, 0, nil
	}

	prop, _ := p.blob.Fields.Lookup(fieldMembers)
	cp := *prop
	cp.Array = a.Filter(func(i int, _ *property.Property) bool { return !drop[i] })
	return &cp, len(drop), nil
}

func (p *Prospect) blobMembers() (*property.Array, error) {
	a, err := p.blob.Fields.Array(fieldMembers)
	if errors.Is(err, property.ErrFieldNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if a.ElemType != property.TypeStruct {
		return nil, fmt.Errorf("%w: %s holds %s", property.ErrWrongKind, fieldMembers, a.ElemType)
	}
	return a, nil
}

func blobMember(e *property.Property) (Member, error) {
	if e.Kind != property.KindStruct {
		return Member{}, fmt.Errorf("%w: element is %s", property.ErrWrongKind, e.Kind)
	}
	id, err := e.Fields.Str(fieldUserID)
	if err != nil {
		return Member{}, err
	}
	slot, err := e.Fields.Int(fieldSlot)
	if err != nil {
		return Member{}, err
	}
	return Member{UserID: id, Slot: int(slot)}, nil
}
