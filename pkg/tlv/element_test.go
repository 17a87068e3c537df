package tlv

import "testing"

// allElementTypes enumerates every defined ElementType, used to check the
// Is* predicates are mutually consistent rather than enumerating every
// true/false combination by hand.
var allElementTypes = []ElementType{
	ElementTypeInt8, ElementTypeInt16, ElementTypeInt32, ElementTypeInt64,
	ElementTypeUInt8, ElementTypeUInt16, ElementTypeUInt32, ElementTypeUInt64,
	ElementTypeFalse, ElementTypeTrue,
	ElementTypeFloat32, ElementTypeFloat64,
	ElementTypeUTF8_1, ElementTypeUTF8_2, ElementTypeUTF8_4, ElementTypeUTF8_8,
	ElementTypeBytes1, ElementTypeBytes2, ElementTypeBytes4, ElementTypeBytes8,
	ElementTypeNull,
	ElementTypeStruct, ElementTypeArray, ElementTypeList,
	ElementTypeEnd,
}

// TestElementType_PredicatesAreConsistent checks that the composite
// predicates (IsInt, IsString) agree with the predicates they're built from,
// and that every predicate is false for ElementType(99) and ElementType(-1),
// which aren't in allElementTypes.
func TestElementType_PredicatesAreConsistent(t *testing.T) {
	for _, et := range allElementTypes {
		t.Run(et.String(), func(t *testing.T) {
			if got, want := et.IsInt(), et.IsSignedInt() || et.IsUnsignedInt(); got != want {
				t.Errorf("IsInt() = %v, want IsSignedInt()||IsUnsignedInt() = %v", got, want)
			}
			if got, want := et.IsString(), et.IsUTF8String() || et.IsBytes(); got != want {
				t.Errorf("IsString() = %v, want IsUTF8String()||IsBytes() = %v", got, want)
			}
			if et.IsSignedInt() && et.IsUnsignedInt() {
				t.Error("IsSignedInt() and IsUnsignedInt() both true")
			}
			if et.IsUTF8String() && et.IsBytes() {
				t.Error("IsUTF8String() and IsBytes() both true")
			}
		})
	}

	for _, bad := range []ElementType{99, ElementType(-1)} {
		if bad.IsInt() || bad.IsBool() || bad.IsFloat() || bad.IsString() || bad.IsContainer() {
			t.Errorf("ElementType(%d): expected every predicate false, one was true", bad)
		}
		if got, want := bad.String(), "Unknown"; got != want {
			t.Errorf("ElementType(%d).String() = %q, want %q", bad, got, want)
		}
	}
}

func TestElementType_Categories(t *testing.T) {
	cases := []struct {
		want    []ElementType
		predOf  func(ElementType) bool
		negName string
	}{
		{[]ElementType{ElementTypeInt8, ElementTypeInt16, ElementTypeInt32, ElementTypeInt64}, ElementType.IsSignedInt, "IsSignedInt"},
		{[]ElementType{ElementTypeUInt8, ElementTypeUInt16, ElementTypeUInt32, ElementTypeUInt64}, ElementType.IsUnsignedInt, "IsUnsignedInt"},
		{[]ElementType{ElementTypeFalse, ElementTypeTrue}, ElementType.IsBool, "IsBool"},
		{[]ElementType{ElementTypeFloat32, ElementTypeFloat64}, ElementType.IsFloat, "IsFloat"},
		{[]ElementType{ElementTypeUTF8_1, ElementTypeUTF8_2, ElementTypeUTF8_4, ElementTypeUTF8_8}, ElementType.IsUTF8String, "IsUTF8String"},
		{[]ElementType{ElementTypeBytes1, ElementTypeBytes2, ElementTypeBytes4, ElementTypeBytes8}, ElementType.IsBytes, "IsBytes"},
		{[]ElementType{ElementTypeStruct, ElementTypeArray, ElementTypeList}, ElementType.IsContainer, "IsContainer"},
	}

	member := func(set []ElementType, et ElementType) bool {
		for _, m := range set {
			if m == et {
				return true
			}
		}
		return false
	}

	for _, c := range cases {
		t.Run(c.negName, func(t *testing.T) {
			for _, et := range allElementTypes {
				want := member(c.want, et)
				if got := c.predOf(et); got != want {
					t.Errorf("%v.%s() = %v, want %v", et, c.negName, got, want)
				}
			}
		})
	}
}

func TestElementType_SizeFields(t *testing.T) {
	cases := []struct {
		elemType          ElementType
		valueSize, lenSize int
	}{
		{ElementTypeInt8, 1, 0},
		{ElementTypeUInt8, 1, 0},
		{ElementTypeInt16, 2, 0},
		{ElementTypeInt32, 4, 0},
		{ElementTypeFloat32, 4, 0},
		{ElementTypeInt64, 8, 0},
		{ElementTypeFloat64, 8, 0},
		{ElementTypeFalse, 0, 0},
		{ElementTypeNull, 0, 0},
		{ElementTypeStruct, 0, 0},
		{ElementTypeUTF8_1, 0, 1},
		{ElementTypeUTF8_2, 0, 2},
		{ElementTypeUTF8_4, 0, 4},
		{ElementTypeUTF8_8, 0, 8},
		{ElementTypeBytes1, 0, 1},
		{ElementTypeBytes4, 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.elemType.String(), func(t *testing.T) {
			if got := tc.elemType.ValueSize(); got != tc.valueSize {
				t.Errorf("ValueSize() = %d, want %d", got, tc.valueSize)
			}
			if got := tc.elemType.LengthFieldSize(); got != tc.lenSize {
				t.Errorf("LengthFieldSize() = %d, want %d", got, tc.lenSize)
			}
		})
	}
}

func TestTagControl_StringAndSize(t *testing.T) {
	cases := []struct {
		ctrl     TagControl
		name     string
		size     int
	}{
		{TagControlAnonymous, "Anonymous", 0},
		{TagControlContext, "Context", 1},
		{TagControlCommonProfile2, "CommonProfile2", 2},
		{TagControlCommonProfile4, "CommonProfile4", 4},
		{TagControlImplicitProfile2, "ImplicitProfile2", 2},
		{TagControlImplicitProfile4, "ImplicitProfile4", 4},
		{TagControlFullyQualified6, "FullyQualified6", 6},
		{TagControlFullyQualified8, "FullyQualified8", 8},
		{TagControl(99), "Unknown", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ctrl.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
			if got := tc.ctrl.Size(); got != tc.size {
				t.Errorf("Size() = %d, want %d", got, tc.size)
			}
		})
	}
}

func TestTag_ConstructorsMatchControlAndSize(t *testing.T) {
	cases := []struct {
		name    string
		tag     Tag
		ctrl    TagControl
		size    int
		tagNum  uint32
	}{
		{"anonymous", Anonymous(), TagControlAnonymous, 0, 0},
		{"context_0", ContextTag(0), TagControlContext, 1, 0},
		{"context_255", ContextTag(255), TagControlContext, 1, 255},
		{"common_2byte", CommonProfileTag(1), TagControlCommonProfile2, 2, 1},
		{"common_4byte", CommonProfileTag(65536), TagControlCommonProfile4, 4, 65536},
		{"implicit_2byte", ImplicitProfileTag(100), TagControlImplicitProfile2, 2, 100},
		{"implicit_4byte", ImplicitProfileTag(100000), TagControlImplicitProfile4, 4, 100000},
		{"fq_6byte", FullyQualifiedTag(0xFFF1, 0xDEED, 1), TagControlFullyQualified6, 6, 1},
		{"fq_8byte", FullyQualifiedTag(0xFFF1, 0xDEED, 0xAA55FEED), TagControlFullyQualified8, 8, 0xAA55FEED},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.Control(); got != tc.ctrl {
				t.Errorf("Control() = %v, want %v", got, tc.ctrl)
			}
			if got := tc.tag.Size(); got != tc.size {
				t.Errorf("Size() = %d, want %d", got, tc.size)
			}
			if got := tc.tag.TagNumber(); got != tc.tagNum {
				t.Errorf("TagNumber() = %d, want %d", got, tc.tagNum)
			}
		})
	}

	fq := FullyQualifiedTag(0xFFF1, 0xDEED, 1)
	if fq.VendorID() != 0xFFF1 || fq.ProfileNumber() != 0xDEED {
		t.Errorf("FullyQualifiedTag VendorID/ProfileNumber = 0x%04X/0x%04X, want 0xFFF1/0xDEED", fq.VendorID(), fq.ProfileNumber())
	}
}

func TestTag_IsAnonymousAndIsContext(t *testing.T) {
	if !Anonymous().IsAnonymous() {
		t.Error("Anonymous().IsAnonymous() = false")
	}
	if !ContextTag(5).IsContext() {
		t.Error("ContextTag(5).IsContext() = false")
	}
	if ContextTag(5).IsAnonymous() || Anonymous().IsContext() {
		t.Error("IsAnonymous/IsContext overlap")
	}
}

func TestTag_IsProfileSpecific(t *testing.T) {
	profileSpecific := []Tag{
		CommonProfileTag(1), CommonProfileTag(100000),
		ImplicitProfileTag(1), ImplicitProfileTag(100000),
		FullyQualifiedTag(1, 2, 3), FullyQualifiedTag(1, 2, 100000),
	}
	notProfileSpecific := []Tag{Anonymous(), ContextTag(0), ContextTag(255)}

	for _, tag := range profileSpecific {
		if !tag.IsProfileSpecific() {
			t.Errorf("tag with control %v should be profile specific", tag.Control())
		}
	}
	for _, tag := range notProfileSpecific {
		if tag.IsProfileSpecific() {
			t.Errorf("tag with control %v should not be profile specific", tag.Control())
		}
	}
}

func TestControlOctet_RoundTrips(t *testing.T) {
	cases := []struct {
		ctrl     byte
		elemType ElementType
		tagCtrl  TagControl
	}{
		{0x00, ElementTypeInt8, TagControlAnonymous},
		{0x08, ElementTypeFalse, TagControlAnonymous},
		{0x18, ElementTypeEnd, TagControlAnonymous},
		{0x24, ElementTypeUInt8, TagControlContext},
		{0x44, ElementTypeUInt8, TagControlCommonProfile2},
		{0x64, ElementTypeUInt8, TagControlCommonProfile4},
		{0x84, ElementTypeUInt8, TagControlImplicitProfile2},
		{0xa4, ElementTypeUInt8, TagControlImplicitProfile4},
		{0xc4, ElementTypeUInt8, TagControlFullyQualified6},
		{0xe4, ElementTypeUInt8, TagControlFullyQualified8},
	}

	for _, tc := range cases {
		gotElem, gotTag := ParseControlOctet(tc.ctrl)
		if gotElem != tc.elemType || gotTag != tc.tagCtrl {
			t.Errorf("ParseControlOctet(0x%02x) = (%v, %v), want (%v, %v)", tc.ctrl, gotElem, gotTag, tc.elemType, tc.tagCtrl)
		}
		if built := BuildControlOctet(tc.elemType, tc.tagCtrl); built != tc.ctrl {
			t.Errorf("BuildControlOctet(%v, %v) = 0x%02x, want 0x%02x", tc.elemType, tc.tagCtrl, built, tc.ctrl)
		}
	}
}
