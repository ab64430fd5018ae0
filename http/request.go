package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"travelinsure/ml"
)

// predictRecord 预测请求体，约束与表单控件一致
type predictRecord struct {
	Age                 *int   `json:"Age" validate:"required,gte=0"`
	EmploymentType      string `json:"EmploymentType" validate:"required,category=EmploymentType"`
	GraduateOrNot       string `json:"GraduateOrNot" validate:"required,category=GraduateOrNot"`
	AnnualIncome        int    `json:"AnnualIncome" validate:"gte=300000,lte=1800000"`
	FamilyMembers       *int   `json:"FamilyMembers" validate:"required,gte=0"`
	ChronicDiseases     string `json:"ChronicDiseases" validate:"required,category=ChronicDiseases"`
	FrequentFlyer       string `json:"FrequentFlyer" validate:"required,category=FrequentFlyer"`
	EverTravelledAbroad string `json:"EverTravelledAbroad" validate:"required,category=EverTravelledAbroad"`
}

func (p predictRecord) record() ml.CustomerRecord {
	return ml.CustomerRecord{
		Age:                 *p.Age,
		EmploymentType:      p.EmploymentType,
		GraduateOrNot:       p.GraduateOrNot,
		AnnualIncome:        p.AnnualIncome,
		FamilyMembers:       *p.FamilyMembers,
		ChronicDiseases:     p.ChronicDiseases,
		FrequentFlyer:       p.FrequentFlyer,
		EverTravelledAbroad: p.EverTravelledAbroad,
	}
}

// predictForm 页面表单，年龄与家庭人数为自由文本
type predictForm struct {
	Age                 string `schema:"age" validate:"required,number"`
	EmploymentType      string `schema:"employment_type"`
	GraduateOrNot       string `schema:"graduate"`
	AnnualIncome        int    `schema:"annual_income"`
	FamilyMembers       string `schema:"family_members" validate:"required,number"`
	ChronicDiseases     string `schema:"chronic_diseases"`
	FrequentFlyer       string `schema:"frequent_flyer"`
	EverTravelledAbroad string `schema:"travelled_abroad"`
}

func defaultForm() predictForm {
	return predictForm{
		EmploymentType:      ml.EmploymentGovernment,
		GraduateOrNot:       ml.AnswerYes,
		AnnualIncome:        ml.MinAnnualIncome,
		ChronicDiseases:     ml.AnswerYes,
		FrequentFlyer:       ml.AnswerYes,
		EverTravelledAbroad: ml.AnswerYes,
	}
}

func (f predictForm) toRecord() (predictRecord, []string) {
	if problems := validationMessages(validate.Struct(f)); len(problems) > 0 {
		return predictRecord{}, problems
	}
	age, err := strconv.Atoi(f.Age)
	if err != nil {
		return predictRecord{}, []string{"Age must be a whole number"}
	}
	family, err := strconv.Atoi(f.FamilyMembers)
	if err != nil {
		return predictRecord{}, []string{"FamilyMembers must be a whole number"}
	}
	record := predictRecord{
		Age:                 &age,
		EmploymentType:      f.EmploymentType,
		GraduateOrNot:       f.GraduateOrNot,
		AnnualIncome:        f.AnnualIncome,
		FamilyMembers:       &family,
		ChronicDiseases:     f.ChronicDiseases,
		FrequentFlyer:       f.FrequentFlyer,
		EverTravelledAbroad: f.EverTravelledAbroad,
	}
	return record, validationMessages(validate.Struct(record))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// category=<Column> 要求取值属于该列的类别表
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return ml.IsCategory(fl.Param(), fl.Field().String())
	})
	return v
}

func validationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "number":
		return fmt.Sprintf("%s must be a whole number", fe.Field())
	case "category":
		return fmt.Sprintf("%s must be one of %v", fe.Field(), ml.Categories(fe.Param()))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
