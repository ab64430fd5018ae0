// Package prompt 终端问答适配层，逐项询问客户信息
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"travelinsure/ml"
)

// Prompter 从输入读取回答，向输出写入问题
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	printer *message.Printer
	fold    cases.Caser
}

// New 创建问答器
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
		printer: message.NewPrinter(language.English),
		fold:    cases.Fold(),
	}
}

// ReadRecord 依次询问八个字段，输入结束时返回 io.EOF
func (p *Prompter) ReadRecord() (ml.CustomerRecord, error) {
	var record ml.CustomerRecord
	var err error

	if record.Age, err = p.askInt("Enter Age", 0, math.MaxInt); err != nil {
		return record, err
	}
	if record.EmploymentType, err = p.askChoice("Employment Type", ml.EmploymentGovernment, ml.EmploymentPrivate); err != nil {
		return record, err
	}
	if record.GraduateOrNot, err = p.askChoice("Graduated College?", ml.AnswerYes, ml.AnswerNo); err != nil {
		return record, err
	}
	if record.AnnualIncome, err = p.askInt("Input Annual Income", ml.MinAnnualIncome, ml.MaxAnnualIncome); err != nil {
		return record, err
	}
	if record.FamilyMembers, err = p.askInt("Size of Family Members", 0, math.MaxInt); err != nil {
		return record, err
	}
	if record.ChronicDiseases, err = p.askChoice("Any history of chronic disease?", ml.AnswerYes, ml.AnswerNo); err != nil {
		return record, err
	}
	if record.FrequentFlyer, err = p.askChoice("Are you a frequent flyer?", ml.AnswerYes, ml.AnswerNo); err != nil {
		return record, err
	}
	if record.EverTravelledAbroad, err = p.askChoice("Have you ever traveled abroad?", ml.AnswerYes, ml.AnswerNo); err != nil {
		return record, err
	}
	return record, nil
}

// PrintResult 输出预测结果
func (p *Prompter) PrintResult(prediction ml.Prediction) {
	fmt.Fprintf(p.out, "Likely to purchase travel insurance? : %s\n", prediction.Label)
}

func (p *Prompter) askInt(question string, min, max int) (int, error) {
	hint := ""
	if max != math.MaxInt {
		hint = p.printer.Sprintf(" (%d - %d)", min, max)
	}
	for {
		answer, err := p.ask(question + hint)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		if value < min || value > max {
			if max == math.MaxInt {
				p.printer.Fprintf(p.out, "Please enter a number of at least %d.\n", min)
			} else {
				p.printer.Fprintf(p.out, "Please enter a number between %d and %d.\n", min, max)
			}
			continue
		}
		return value, nil
	}
}

// askChoice 接受选项序号或不区分大小写的选项文本
func (p *Prompter) askChoice(question string, choices ...string) (string, error) {
	options := make([]string, len(choices))
	for i, choice := range choices {
		options[i] = fmt.Sprintf("%d) %s", i+1, choice)
	}
	for {
		answer, err := p.ask(fmt.Sprintf("%s [%s]", question, strings.Join(options, ", ")))
		if err != nil {
			return "", err
		}
		if choice, ok := p.match(answer, choices); ok {
			return choice, nil
		}
		fmt.Fprintf(p.out, "Please choose one of: %s.\n", strings.Join(choices, ", "))
	}
}

func (p *Prompter) match(answer string, choices []string) (string, bool) {
	if index, err := strconv.Atoi(answer); err == nil {
		if index >= 1 && index <= len(choices) {
			return choices[index-1], true
		}
		return "", false
	}
	folded := p.fold.String(answer)
	for _, choice := range choices {
		if p.fold.String(choice) == folded {
			return choice, true
		}
	}
	return "", false
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
