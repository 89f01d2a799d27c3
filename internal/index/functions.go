package index

import (
	"database/sql/driver"

	"modernc.org/sqlite"

	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/query"
)

// registerFunctions installs the conversions the SQL backend compiles
// int(), float() and ref() into. They follow the Go terms exactly: NULL in,
// NULL out; a string that does not parse is NULL for int and float.
func registerFunctions() error {
	fns := []struct {
		name string
		fn   func(s string) driver.Value
	}{
		{query.SQLFuncInt, func(s string) driver.Value {
			if n, ok := query.ParseInt(s); ok {
				return n
			}
			return nil
		}},
		{query.SQLFuncFloat, func(s string) driver.Value {
			if f, ok := query.ParseFloat(s); ok {
				return f
			}
			return nil
		}},
		{query.SQLFuncRef, func(s string) driver.Value {
			return int64(model.RefID(s))
		}},
	}

	for _, f := range fns {
		fn := f.fn
		err := sqlite.RegisterDeterministicScalarFunction(f.name, 1,
			func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				s, ok := textArg(args[0])
				if !ok {
					return nil, nil
				}
				return fn(s), nil
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func textArg(v driver.Value) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}
