package xliffai

import (
	"fmt"
	"regexp"
)

// The XLIFF generator emits unit ids in exactly two shapes:
//
//	Full:   "<ObjectType> <ObjectId> - <ElementType> <ElementId> - Property <PropertyId>"
//	Simple: "<ObjectType> <ObjectId> - Property <PropertyId>"
//
// No other grammar is attempted; ids are generator-controlled.
var (
	fullUnitIDRe   = regexp.MustCompile(`^(\w+) (\d+) - (\w+) (\d+) - Property (\d+)$`)
	simpleUnitIDRe = regexp.MustCompile(`^(\w+) (\d+) - Property (\d+)$`)
)

// ParseUnitID decodes a trans-unit id string. It returns nil when the id
// matches neither grammar; callers skip that unit rather than fail the
// whole scan.
func ParseUnitID(id string) *TransUnitIdentity {
	if m := fullUnitIDRe.FindStringSubmatch(id); m != nil {
		return &TransUnitIdentity{
			ObjectType:  m[1],
			ObjectID:    m[2],
			ElementType: m[3],
			ElementID:   m[4],
			PropertyID:  m[5],
		}
	}
	if m := simpleUnitIDRe.FindStringSubmatch(id); m != nil {
		return &TransUnitIdentity{
			ObjectType: m[1],
			ObjectID:   m[2],
			PropertyID: m[3],
		}
	}
	return nil
}

// FormatUnitID renders an identity back into the generator's grammar.
// Formatting a parsed id yields the original string.
func FormatUnitID(identity TransUnitIdentity) string {
	if identity.ElementType != "" {
		return fmt.Sprintf("%s %s - %s %s - Property %s",
			identity.ObjectType, identity.ObjectID,
			identity.ElementType, identity.ElementID,
			identity.PropertyID)
	}
	return fmt.Sprintf("%s %s - Property %s",
		identity.ObjectType, identity.ObjectID, identity.PropertyID)
}

// PropertyLabel renders a property id for display. Unrecognized ids are
// shown as "Property <id>".
func PropertyLabel(propertyID string) string {
	switch propertyID {
	case CaptionPropertyID:
		return "Caption"
	case ToolTipPropertyID:
		return "ToolTip"
	default:
		return "Property " + propertyID
	}
}

// IsPageObject reports whether an object type is page-sourced.
func IsPageObject(objectType string) bool {
	return equalFold(objectType, "Page") || equalFold(objectType, "PageExtension")
}

// IsTableObject reports whether an object type is table-sourced.
func IsTableObject(objectType string) bool {
	return equalFold(objectType, "Table") || equalFold(objectType, "TableExtension")
}
