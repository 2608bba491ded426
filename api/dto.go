package api

// ItemInput 表示一个提交的候选物品。
// 标识符可选，为空时按输入顺序自动编号。
type ItemInput struct {
	ID     string  `json:"id" binding:"omitempty,max=64"`
	Weight float64 `json:"weight" binding:"gte=0"`
	Value  float64 `json:"value" binding:"gte=0"`
}

// SolveRequest 表示一次求解请求。
// mode 指定求解方式：table (默认，完整 DP 表与物品回溯)、
// parallel (按容量分段并行填表) 或 value (单行压缩，仅返回最优值)。
type SolveRequest struct {
	Capacity float64     `json:"capacity" binding:"gte=0"`
	Items    []ItemInput `json:"items" binding:"required,min=1,dive"`
	Mode     string      `json:"mode" binding:"omitempty,oneof=table parallel value"`
}

// ChosenItem 表示结果中一个被选中的物品，重量按原始单位返回。
type ChosenItem struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// SolveResponse 表示一次求解的结果。
// value 模式下只有 total_value 有意义，items 为空。
type SolveResponse struct {
	SolveID     string       `json:"solve_id"`
	Mode        string       `json:"mode"`
	Capacity    float64      `json:"capacity"`
	Scale       int32        `json:"scale"`
	TotalValue  float64      `json:"total_value"`
	TotalWeight float64      `json:"total_weight"`
	Items       []ChosenItem `json:"items"`
}
