package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// zeroFields lists the paths of zero-valued leaf fields, skipping those tagged
// with `test:"nullable"`.
func zeroFields(value reflect.Value, path string) (paths []string) {
	if value.Kind() != reflect.Struct {
		if value.IsZero() {
			paths = append(paths, path)
		}

		return paths
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		if field.Tag.Get("test") == "nullable" {
			continue
		}

		paths = append(paths, zeroFields(value.Field(i), path+"."+field.Name)...)
	}

	return paths
}

func TestDefault(t *testing.T) {
	cfg := Default()

	t.Run("no zero fields", func(t *testing.T) {
		assert.Empty(t, zeroFields(reflect.ValueOf(*cfg), "Config"))
	})

	t.Run("limits consistency", func(t *testing.T) {
		assert.GreaterOrEqual(t, cfg.Parser.MaxMethodLength, 2)
		assert.Equal(t, len("HTTP/1.1"), cfg.Parser.ProtoLength)
		assert.Greater(t, cfg.NET.RequestBuffer.Maximal, cfg.Body.MaxSize)
		assert.LessOrEqual(t, cfg.NET.RequestBuffer.Default, cfg.NET.RequestBuffer.Maximal)
	})

	t.Run("fresh copy", func(t *testing.T) {
		other := Default()
		other.Headers.OnDuplicate = Reject
		assert.Equal(t, FirstWins, cfg.Headers.OnDuplicate)
	})
}
