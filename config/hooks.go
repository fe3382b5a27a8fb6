package config

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
)

var (
	angleType  = reflect.TypeOf(angle.Angle(0))
	costType   = reflect.TypeOf(cost.Cost(0))
	targetType = reflect.TypeOf(Target{})
)

// angleHook accepts YAML integers and hex strings for angle.Angle.
func angleHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != angleType {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return angle.Parse(s)
	}
	n, ok := integer(data)
	if !ok {
		return data, nil
	}
	if n < 0 || n >= angle.Count {
		return nil, fmt.Errorf("%w: %d is out of range", angle.ErrBadAngle, n)
	}

	return angle.Angle(n), nil
}

// costHook reads decimals exactly. YAML floats go through their shortest
// decimal form, so 0.1 stays 0.1.
func costHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != costType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return cost.Parse(v)
	case float64:
		return cost.Parse(strconv.FormatFloat(v, 'f', -1, 64))
	}
	if n, ok := integer(data); ok {
		return cost.Units(n), nil
	}

	return data, nil
}

// targetHook lets a bare angle stand for {angle: ...}.
func targetHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != targetType {
		return data, nil
	}
	switch data.(type) {
	case map[string]any, map[any]any:
		return data, nil
	}

	return map[string]any{"angle": data}, nil
}

func integer(data any) (int64, bool) {
	switch v := data.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	}

	return 0, false
}
