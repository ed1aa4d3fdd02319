package mongodb

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var tDecimal = reflect.TypeOf(decimal.Decimal{})

// NewRegistry returns the default bson registry extended with a codec that
// stores decimal.Decimal as Decimal128.
func NewRegistry() *bsoncodec.Registry {
	registry := bson.NewRegistry()
	registry.RegisterTypeEncoder(tDecimal, bsoncodec.ValueEncoderFunc(EncodeDecimal))
	registry.RegisterTypeDecoder(tDecimal, bsoncodec.ValueDecoderFunc(DecodeDecimal))
	return registry
}

func EncodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return bsoncodec.ValueEncoderError{Name: "EncodeDecimal", Types: []reflect.Type{tDecimal}, Received: val}
	}

	d128, err := ToDecimal128(val.Interface().(decimal.Decimal))
	if err != nil {
		return err
	}

	return vw.WriteDecimal128(d128)
}

// DecodeDecimal accepts Decimal128 as well as the numeric types older
// documents may hold.
func DecodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDecimal {
		return bsoncodec.ValueDecoderError{Name: "DecodeDecimal", Types: []reflect.Type{tDecimal}, Received: val}
	}

	var (
		result decimal.Decimal
		err    error
	)

	switch vr.Type() {
	case bsontype.Decimal128:
		var d128 primitive.Decimal128
		if d128, err = vr.ReadDecimal128(); err != nil {
			return err
		}
		if result, err = decimal.NewFromString(d128.String()); err != nil {
			return err
		}
	case bsontype.Double:
		var f float64
		if f, err = vr.ReadDouble(); err != nil {
			return err
		}
		result = decimal.NewFromFloat(f)
	case bsontype.Int32:
		var i int32
		if i, err = vr.ReadInt32(); err != nil {
			return err
		}
		result = decimal.NewFromInt32(i)
	case bsontype.Int64:
		var i int64
		if i, err = vr.ReadInt64(); err != nil {
			return err
		}
		result = decimal.NewFromInt(i)
	case bsontype.String:
		var s string
		if s, err = vr.ReadString(); err != nil {
			return err
		}
		if result, err = decimal.NewFromString(s); err != nil {
			return err
		}
	case bsontype.Null:
		if err = vr.ReadNull(); err != nil {
			return err
		}
		result = decimal.Zero
	default:
		return fmt.Errorf("cannot decode %v into decimal.Decimal", vr.Type())
	}

	val.Set(reflect.ValueOf(result))
	return nil
}

func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("converting %s to decimal128: %w", d.String(), err)
	}
	return d128, nil
}
