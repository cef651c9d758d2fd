package util

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/zkrollup/fixturegen/common/types"
)

// AddressDecodeFunc decodes 0x-prefixed hex strings into addresses and rejects
// anything that is not exactly 20 bytes.
func AddressDecodeFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(types.Address{}) {
			return data, nil
		}
		return types.HexToAddress(data.(string))
	}
}
