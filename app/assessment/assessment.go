// Package assessment scores the 15-question ESG self-assessment form.
// Static point scoring with per-pillar clamps; independent of the public
// coverage pipeline.
package assessment

import (
	"fmt"
	"math"
	"strings"
)

// Per-pillar maximums. E + S + G caps sum to 100.
const (
	MaxEnvironmentalPoints = 33
	MaxSocialPoints        = 35
	MaxGovernancePoints    = 32
)

// SelfAssessment is the questionnaire input submitted by a company.
type SelfAssessment struct {
	CompanyName string `json:"company_name"`

	// Environmental
	GHGDisclosed          bool    `json:"ghg_disclosed"`
	RenewablePercent      float64 `json:"renewable_percent"`
	WaterTarget           bool    `json:"water_target"`
	WasteReductionProgram bool    `json:"waste_reduction_program"`
	BiodiversityPolicy    bool    `json:"biodiversity_policy"`

	// Social
	GrievanceMechanism    bool    `json:"grievance_mechanism"`
	GenderPayGap          float64 `json:"gender_pay_gap"`
	SupplierAudits        bool    `json:"supplier_audits"`
	EmployeeTrainingHours int     `json:"employee_training_hours"`
	DataPrivacyPolicy     bool    `json:"data_privacy_policy"`

	// Governance
	BoardESGCommittee     bool    `json:"board_esg_committee"`
	BoardFemalePercent    float64 `json:"board_female_percent"`
	AnticorruptionTrain   bool    `json:"anticorruption_training"`
	ExecCompESGLinked     bool    `json:"exec_comp_esg_linked"`
	IndependentBoardChair bool    `json:"independent_board_chair"`
}

// Result is the scored self-assessment.
type Result struct {
	CompanyName        string  `json:"company_name"`
	BaseScore          float64 `json:"base_sa_score"`
	EnvironmentalScore float64 `json:"e_score"`
	SocialScore        float64 `json:"s_score"`
	GovernanceScore    float64 `json:"g_score"`
	Status             string  `json:"status"`
}

// Validate checks field ranges before scoring.
func (sa *SelfAssessment) Validate() error {
	if strings.TrimSpace(sa.CompanyName) == "" {
		return fmt.Errorf("company_name is required")
	}
	if sa.RenewablePercent < 0 || sa.RenewablePercent > 100 {
		return fmt.Errorf("renewable_percent must be in [0,100]")
	}
	if sa.GenderPayGap < 0 || sa.GenderPayGap > 100 {
		return fmt.Errorf("gender_pay_gap must be in [0,100]")
	}
	if sa.BoardFemalePercent < 0 || sa.BoardFemalePercent > 100 {
		return fmt.Errorf("board_female_percent must be in [0,100]")
	}
	if sa.EmployeeTrainingHours < 0 {
		return fmt.Errorf("employee_training_hours must be non-negative")
	}
	return nil
}

// Score computes the pillar and total self-assessment scores.
func (sa *SelfAssessment) Score() Result {
	var e float64
	e += points(sa.GHGDisclosed, 7)
	e += math.Min(sa.RenewablePercent*0.10, 10)
	e += points(sa.WaterTarget, 5)
	e += points(sa.WasteReductionProgram, 6)
	e += points(sa.BiodiversityPolicy, 5)
	e = clamp(e, MaxEnvironmentalPoints)

	var s float64
	s += points(sa.GrievanceMechanism, 7)
	s += math.Max(0, 7-sa.GenderPayGap*0.7)
	s += points(sa.SupplierAudits, 7)
	s += math.Min(float64(sa.EmployeeTrainingHours)*0.7, 7)
	s += points(sa.DataPrivacyPolicy, 7)
	s = clamp(s, MaxSocialPoints)

	var g float64
	g += points(sa.BoardESGCommittee, 7)
	g += math.Min(sa.BoardFemalePercent*0.12, 6)
	g += points(sa.AnticorruptionTrain, 6)
	g += points(sa.ExecCompESGLinked, 7)
	g += points(sa.IndependentBoardChair, 6)
	g = clamp(g, MaxGovernancePoints)

	total := clamp(e+s+g, 100)

	return Result{
		CompanyName:        sa.CompanyName,
		BaseScore:          round1(total),
		EnvironmentalScore: round1(e),
		SocialScore:        round1(s),
		GovernanceScore:    round1(g),
		Status:             "Self-Assessment Complete",
	}
}

func points(answered bool, value float64) float64 {
	if answered {
		return value
	}
	return 0
}

func clamp(value, max float64) float64 {
	return math.Max(0, math.Min(value, max))
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
