package ml

import "sort"

// 列顺序与类别表必须与训练数据一致，编码为取值在按字节排序的类别表中的位置
var categories = map[string][]string{
	"EmploymentType":      sortedCopy(EmploymentGovernment, EmploymentPrivate),
	"GraduateOrNot":       sortedCopy(AnswerYes, AnswerNo),
	"ChronicDiseases":     sortedCopy(AnswerYes, AnswerNo),
	"FrequentFlyer":       sortedCopy(AnswerYes, AnswerNo),
	"EverTravelledAbroad": sortedCopy(AnswerYes, AnswerNo),
}

func FeatureVector(record CustomerRecord) []float64 {
	return []float64{
		float64(record.Age),
		float64(CategoryCode("EmploymentType", record.EmploymentType)),
		float64(CategoryCode("GraduateOrNot", record.GraduateOrNot)),
		float64(record.AnnualIncome),
		float64(record.FamilyMembers),
		float64(CategoryCode("ChronicDiseases", record.ChronicDiseases)),
		float64(CategoryCode("FrequentFlyer", record.FrequentFlyer)),
		float64(CategoryCode("EverTravelledAbroad", record.EverTravelledAbroad)),
	}
}

func FeatureNames() []string {
	return []string{
		"Age",
		"EmploymentType",
		"GraduateOrNot",
		"AnnualIncome",
		"FamilyMembers",
		"ChronicDiseases",
		"FrequentFlyer",
		"EverTravelledAbroad",
	}
}

func FeatureCount() int {
	return len(FeatureNames())
}

func CategoricalColumns() []string {
	return []string{
		"EmploymentType",
		"GraduateOrNot",
		"ChronicDiseases",
		"FrequentFlyer",
		"EverTravelledAbroad",
	}
}

// Categories 返回列的类别表，数值列或未知列返回nil
func Categories(column string) []string {
	values, ok := categories[column]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// CategoryCode 取值不在类别表中时返回-1
func CategoryCode(column, value string) int {
	for code, candidate := range categories[column] {
		if candidate == value {
			return code
		}
	}
	return -1
}

func IsCategory(column, value string) bool {
	return CategoryCode(column, value) >= 0
}

func sortedCopy(values ...string) []string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return sorted
}
