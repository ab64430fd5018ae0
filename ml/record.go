package ml

const (
	EmploymentGovernment = "Government Sector"
	EmploymentPrivate    = "Private Sector/Self Employed"

	AnswerYes = "Yes"
	AnswerNo  = "No"
)

const (
	MinAnnualIncome = 300000
	MaxAnnualIncome = 1800000
)

type CustomerRecord struct {
	Age                 int    `json:"Age"`
	EmploymentType      string `json:"EmploymentType"`
	GraduateOrNot       string `json:"GraduateOrNot"`
	AnnualIncome        int    `json:"AnnualIncome"`
	FamilyMembers       int    `json:"FamilyMembers"`
	ChronicDiseases     string `json:"ChronicDiseases"`
	FrequentFlyer       string `json:"FrequentFlyer"`
	EverTravelledAbroad string `json:"EverTravelledAbroad"`
}

// Label 结果消息中展示的预测文本
func Label(purchase bool) string {
	if purchase {
		return AnswerYes
	}
	return AnswerNo
}
