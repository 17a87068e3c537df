package tlv

import "github.com/backkem/mattercore/pkg/bytesio"

// TagControl is the tag form, as encoded in the upper 3 bits of the control
// octet.
type TagControl int

const (
	TagControlAnonymous        TagControl = 0 // 000 - No tag, 0 octets
	TagControlContext          TagControl = 1 // 001 - Context-specific, 1 octet
	TagControlCommonProfile2   TagControl = 2 // 010 - Common Profile, 2 octets (tag < 65536)
	TagControlCommonProfile4   TagControl = 3 // 011 - Common Profile, 4 octets (tag >= 65536)
	TagControlImplicitProfile2 TagControl = 4 // 100 - Implicit Profile, 2 octets (reserved)
	TagControlImplicitProfile4 TagControl = 5 // 101 - Implicit Profile, 4 octets (reserved)
	TagControlFullyQualified6  TagControl = 6 // 110 - Fully Qualified, 6 octets (tag < 65536)
	TagControlFullyQualified8  TagControl = 7 // 111 - Fully Qualified, 8 octets (tag >= 65536)
)

func (tc TagControl) String() string {
	switch tc {
	case TagControlAnonymous:
		return "Anonymous"
	case TagControlContext:
		return "Context"
	case TagControlCommonProfile2:
		return "CommonProfile2"
	case TagControlCommonProfile4:
		return "CommonProfile4"
	case TagControlImplicitProfile2:
		return "ImplicitProfile2"
	case TagControlImplicitProfile4:
		return "ImplicitProfile4"
	case TagControlFullyQualified6:
		return "FullyQualified6"
	case TagControlFullyQualified8:
		return "FullyQualified8"
	default:
		return "Unknown"
	}
}

// Size returns the size in bytes of the tag field for this control type.
func (tc TagControl) Size() int {
	switch tc {
	case TagControlAnonymous:
		return 0
	case TagControlContext:
		return 1
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		return 2
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		return 4
	case TagControlFullyQualified6:
		return 6
	case TagControlFullyQualified8:
		return 8
	default:
		return 0
	}
}

// Tag is a TLV tag: anonymous, context-specific (scoped to the enclosing
// structure), or profile-specific (common or fully qualified with an
// explicit vendor/profile pair).
type Tag struct {
	control       TagControl
	vendorID      uint16 // only for fully-qualified tags
	profileNumber uint16 // only for fully-qualified tags
	tagNumber     uint32 // 8-bit for context, up to 32-bit otherwise
}

// Anonymous returns a tag with no identifying information. Valid anywhere
// except directly inside a structure.
func Anonymous() Tag {
	return Tag{control: TagControlAnonymous}
}

// ContextTag returns a context-specific tag, valid only for elements
// directly inside a container (a structure or a list).
func ContextTag(tagNum uint8) Tag {
	return Tag{control: TagControlContext, tagNumber: uint32(tagNum)}
}

// CommonProfileTag returns a tag in the Matter common profile (profile
// number implied as zero on the wire), picking the 2- or 4-octet form based
// on how large tagNum is.
func CommonProfileTag(tagNum uint32) Tag {
	ctrl := TagControlCommonProfile2
	if tagNum >= 65536 {
		ctrl = TagControlCommonProfile4
	}
	return Tag{control: ctrl, tagNumber: tagNum}
}

// ImplicitProfileTag returns a tag in the reserved implicit-profile form.
// The encoder never selects this form on its own (see ProfileTag); it's
// exposed only so tests and other callers can construct wire bytes this
// decoder is required to reject.
func ImplicitProfileTag(tagNum uint32) Tag {
	ctrl := TagControlImplicitProfile2
	if tagNum >= 65536 {
		ctrl = TagControlImplicitProfile4
	}
	return Tag{control: ctrl, tagNumber: tagNum}
}

// FullyQualifiedTag returns a profile-specific tag carrying an explicit
// vendor ID and profile number, picking the 48- or 64-bit form based on how
// large tagNum is.
func FullyQualifiedTag(vendorID, profileNum uint16, tagNum uint32) Tag {
	ctrl := TagControlFullyQualified6
	if tagNum >= 65536 {
		ctrl = TagControlFullyQualified8
	}
	return Tag{control: ctrl, vendorID: vendorID, profileNumber: profileNum, tagNumber: tagNum}
}

// ProfileTag picks a tag form from an optional (profile, id) pair, following
// the same selection the encoder would make given a schema-less caller: no
// profile and no id gives Anonymous; no profile with an id gives a Context
// tag (which requires the id to fit in 8 bits); a zero profile gives a
// Common Profile tag; any other profile gives a Fully Qualified tag, with
// the vendor ID and profile number taken from the high and low 16 bits of
// profile respectively.
func ProfileTag(hasProfile bool, profile uint32, hasID bool, id uint32) (Tag, error) {
	switch {
	case !hasProfile && !hasID:
		return Anonymous(), nil
	case !hasProfile:
		if id > 0xFF {
			return Tag{}, ErrBadTag
		}
		return ContextTag(uint8(id)), nil
	case !hasID:
		return Tag{}, ErrBadTag
	case profile == 0:
		return CommonProfileTag(id), nil
	default:
		return FullyQualifiedTag(uint16(profile>>16), uint16(profile), id), nil
	}
}

func (t Tag) Control() TagControl { return t.control }

func (t Tag) IsAnonymous() bool { return t.control == TagControlAnonymous }

func (t Tag) IsContext() bool { return t.control == TagControlContext }

// IsProfileSpecific reports whether this tag carries a profile (common or
// fully qualified).
func (t Tag) IsProfileSpecific() bool {
	return t.control >= TagControlCommonProfile2
}

// VendorID returns the vendor ID for fully-qualified tags, 0 otherwise.
func (t Tag) VendorID() uint16 { return t.vendorID }

// ProfileNumber returns the profile number for fully-qualified tags, 0
// otherwise.
func (t Tag) ProfileNumber() uint16 { return t.profileNumber }

// TagNumber returns the tag number: 0-255 for context tags, up to 32 bits
// for profile-specific tags.
func (t Tag) TagNumber() uint32 { return t.tagNumber }

// Size returns the encoded size in bytes of this tag.
func (t Tag) Size() int { return t.control.Size() }

// WriteTo appends the tag's encoded bytes (little-endian, per its control
// form) to w.
func (t Tag) WriteTo(w *bytesio.Writer) {
	switch t.control {
	case TagControlAnonymous:
		return
	case TagControlContext:
		w.WriteUint8(uint8(t.tagNumber))
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		w.WriteUint16(uint16(t.tagNumber))
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		w.WriteUint32(t.tagNumber)
	case TagControlFullyQualified6:
		w.WriteUint16(t.vendorID)
		w.WriteUint16(t.profileNumber)
		w.WriteUint16(uint16(t.tagNumber))
	case TagControlFullyQualified8:
		w.WriteUint16(t.vendorID)
		w.WriteUint16(t.profileNumber)
		w.WriteUint32(t.tagNumber)
	}
}

// ReadTag reads a tag in the given control form from r.
func ReadTag(r *bytesio.Reader, ctrl TagControl) (Tag, error) {
	tag := Tag{control: ctrl}

	switch ctrl {
	case TagControlAnonymous:
		return tag, nil

	case TagControlContext:
		v, err := r.Uint8()
		if err != nil {
			return tag, err
		}
		tag.tagNumber = uint32(v)

	case TagControlCommonProfile2, TagControlImplicitProfile2:
		v, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		tag.tagNumber = uint32(v)

	case TagControlCommonProfile4, TagControlImplicitProfile4:
		v, err := r.Uint32()
		if err != nil {
			return tag, err
		}
		tag.tagNumber = v

	case TagControlFullyQualified6:
		vendor, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		profile, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		id, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		tag.vendorID = vendor
		tag.profileNumber = profile
		tag.tagNumber = uint32(id)

	case TagControlFullyQualified8:
		vendor, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		profile, err := r.Uint16()
		if err != nil {
			return tag, err
		}
		id, err := r.Uint32()
		if err != nil {
			return tag, err
		}
		tag.vendorID = vendor
		tag.profileNumber = profile
		tag.tagNumber = id
	}

	return tag, nil
}
