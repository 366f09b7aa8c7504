package structs

type Calorie struct {
	Steps        int  `json:"steps"`
	StepsBurned  int  `json:"steps_burned"`
	ExtraBurned  int  `json:"extra_burned"`
	TotalBurned  int  `json:"total_burned"`
	Consumed     int  `json:"consumed"`
	Balance      int  `json:"balance"`
	Allowance    int  `json:"allowance"`
	ExceededBy   int  `json:"exceeded_by"`
	WithinBudget bool `json:"within_budget"`
}
