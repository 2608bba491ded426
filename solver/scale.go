package solver

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/marc8cel/knapsack/xerrors"
)

// maxInt64Decimal 用于缩放后的溢出检查。
var maxInt64Decimal = decimal.NewFromInt(math.MaxInt64)

// ScaleWeights 将可能含小数的重量与容量缩放为同单位的非负整数。
// 整数索引的 DP 要求整数重量；本函数寻找最小的十进制缩放位数 k (0 <= k <= maxScale)，
// 使所有重量乘以 10^k 后均为整数，容量按同一因子缩放后向下取整
// （缩放后重量均为整数，容量的小数余量任何子集都无法利用）。
// 返回值：缩放后的重量序列、缩放后的容量、以及使用的缩放位数。
func ScaleWeights(weights []decimal.Decimal, capacity decimal.Decimal, maxScale int32) ([]int64, int64, int32, error) {
	if capacity.IsNegative() {
		return nil, 0, 0, xerrors.ErrNegativeCapacity
	}
	for i, w := range weights {
		if w.IsNegative() {
			return nil, 0, 0, xerrors.ErrNegativeWeight.WithContext("index", i)
		}
	}

	scale, err := requiredScale(weights, capacity, maxScale)
	if err != nil {
		return nil, 0, 0, err
	}

	scaled := make([]int64, len(weights))
	for i, w := range weights {
		shifted := w.Shift(scale)
		if shifted.Cmp(maxInt64Decimal) > 0 {
			return nil, 0, 0, xerrors.ErrScaleOverflow.WithContext("index", i).WithContext("scale", scale)
		}
		scaled[i] = shifted.IntPart()
	}

	shiftedCap := capacity.Shift(scale).Floor()
	if shiftedCap.Cmp(maxInt64Decimal) > 0 {
		return nil, 0, 0, xerrors.ErrScaleOverflow.WithContext("scale", scale)
	}

	return scaled, shiftedCap.IntPart(), scale, nil
}

// requiredScale 返回使所有重量成为整数的最小十进制位数。
// 容量本身无需成为整数（随后向下取整），因此不参与位数计算。
func requiredScale(weights []decimal.Decimal, capacity decimal.Decimal, maxScale int32) (int32, error) {
	for scale := int32(0); scale <= maxScale; scale++ {
		allInteger := true
		for _, w := range weights {
			if !w.Shift(scale).IsInteger() {
				allInteger = false
				break
			}
		}
		if allInteger {
			return scale, nil
		}
	}

	if maxScale == 0 {
		return 0, xerrors.ErrFractionalWeight
	}
	return 0, xerrors.ErrScaleOverflow.WithContext("max_scale", maxScale)
}

// ScaleFloatWeights 是 ScaleWeights 的便捷封装，接受 float64 输入。
// float64 先经 decimal 精确化，避免二进制浮点误差放大到缩放结果中。
func ScaleFloatWeights(weights []float64, capacity float64, maxScale int32) ([]int64, int64, int32, error) {
	decimals := make([]decimal.Decimal, len(weights))
	for i, w := range weights {
		decimals[i] = decimal.NewFromFloat(w)
	}
	return ScaleWeights(decimals, decimal.NewFromFloat(capacity), maxScale)
}
