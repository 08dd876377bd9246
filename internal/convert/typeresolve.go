package convert

import (
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// resolveType implements spec §4.2: pick exactly one present field,
// priority b, d, bM, s, adr, barr, else Int — applying each field's
// numeric coercion so the result is always a valid target-language type.
func resolveType(t *model.Type) vyptype.Type {
	switch {
	case t.Bool:
		return vyptype.BoolType{}
	case t.Decimal:
		return vyptype.DecimalType{}
	case t.BytesM != nil:
		return vyptype.NewBytesMType(t.BytesM.M)
	case t.String != nil:
		return vyptype.NewStringType(t.String.MaxLen)
	case t.Address:
		return vyptype.AddressType{}
	case t.Bytes != nil:
		return vyptype.NewBytesType(t.Bytes.MaxLen)
	case t.Int != nil:
		return vyptype.NewIntType(t.Int.N, t.Int.Sign)
	default:
		return vyptype.NewIntType(0, false)
	}
}
