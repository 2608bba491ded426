package xerrors

var (
	// ErrEmptyProblem 问题实例为空。
	ErrEmptyProblem = New(ErrInvalidArg, 400001, "empty problem", "problem must contain at least one item", nil)
	// ErrNegativeWeight 物品重量为负数。
	ErrNegativeWeight = New(ErrInvalidArg, 400002, "negative weight", "item weights must be non-negative integers", nil)
	// ErrNegativeValue 物品价值为负数。
	ErrNegativeValue = New(ErrInvalidArg, 400003, "negative value", "item values must be non-negative", nil)
	// ErrNegativeCapacity 背包容量为负数。
	ErrNegativeCapacity = New(ErrInvalidArg, 400004, "negative capacity", "capacity must be a non-negative integer", nil)
	// ErrEmptyItemID 物品标识为空。
	ErrEmptyItemID = New(ErrInvalidArg, 400006, "empty item id", "every item must carry a non-empty identifier", nil)
	// ErrDuplicateItemID 物品标识重复。
	ErrDuplicateItemID = New(ErrInvalidArg, 400007, "duplicate item id", "item identifiers must be unique within a problem", nil)
	// ErrDuplicateItem 存在完全相同的物品 (重量与价值均相同)。
	ErrDuplicateItem = New(ErrInvalidArg, 400008, "duplicate item", "two items share the same weight and value, adjust one of them", nil)
	// ErrInvalidValue 物品价值不是有限数。
	ErrInvalidValue = New(ErrInvalidArg, 400009, "invalid value", "item values must be finite numbers", nil)
	// ErrFractionalWeight 重量为小数且无法缩放为整数。
	ErrFractionalWeight = New(ErrInvalidArg, 400010, "fractional weight", "weights must be integers, supply a scale factor or pre-scale the input", nil)
	// ErrScaleOverflow 缩放因子过大，整数重量会溢出。
	ErrScaleOverflow = New(ErrInvalidArg, 400011, "scale overflow", "scaling fractional weights to integers exceeds the allowed factor", nil)
	// ErrTableTooLarge DP 表规模超出安全上限。
	ErrTableTooLarge = New(ErrLimitExceeded, 429001, "problem too large", "items x capacity exceeds the configured table cell bound", nil)
	// ErrTooManyItems 物品数量超出上限。
	ErrTooManyItems = New(ErrLimitExceeded, 429002, "too many items", "item count exceeds the configured maximum", nil)
	// ErrCapacityTooLarge 容量超出上限。
	ErrCapacityTooLarge = New(ErrLimitExceeded, 429003, "capacity too large", "capacity exceeds the configured maximum", nil)
)
