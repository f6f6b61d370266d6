package services

import (
	"fmt"

	"akfinance/internal/config"
	"akfinance/internal/core"
	"akfinance/internal/fincalc"
	"akfinance/internal/log"
	"akfinance/internal/metrics"
)

// MortgageInput describes a home purchase financed with an annuity loan.
type MortgageInput struct {
	PropertyPrice float64 `json:"propertyPrice"`
	DownPayment   float64 `json:"downPayment"`
	AnnualRate    float64 `json:"annualRate"`
	TermMonths    int     `json:"termMonths"`
}

// MortgageResult is the computed mortgage summary with its schedule.
type MortgageResult struct {
	Principal          float64               `json:"principal"`
	DownPaymentPercent float64               `json:"downPaymentPercent"`
	MonthlyPayment     float64               `json:"monthlyPayment"`
	TotalPaid          float64               `json:"totalPaid"`
	TotalInterest      float64               `json:"totalInterest"`
	CostPercent        float64               `json:"costPercent"`
	Schedule           []core.AmortizationRow `json:"schedule"`
}

// CreditInput describes a plain consumer loan.
type CreditInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	TermMonths int     `json:"termMonths"`
}

// CreditResult is the computed loan summary with its schedule.
type CreditResult struct {
	MonthlyPayment float64                `json:"monthlyPayment"`
	TotalPaid      float64                `json:"totalPaid"`
	TotalInterest  float64                `json:"totalInterest"`
	CostPercent    float64                `json:"costPercent"`
	Schedule       []core.AmortizationRow `json:"schedule"`
}

// InvestmentInput describes a recurring investment plan.
type InvestmentInput struct {
	InitialAmount       float64            `json:"initialAmount"`
	MonthlyContribution float64            `json:"monthlyContribution"`
	AnnualRate          float64            `json:"annualRate"`
	HorizonYears        int                `json:"horizonYears"`
	Mode                fincalc.GrowthMode `json:"mode"`
}

// InvestmentResult is the computed projection.
type InvestmentResult struct {
	FinalBalance     float64                 `json:"finalBalance"`
	TotalContributed float64                 `json:"totalContributed"`
	Profit           float64                 `json:"profit"`
	ProfitPercent    float64                 `json:"profitPercent"`
	Yearly           []core.YearlyProjection `json:"yearly"`
}

// CalculatorService validates inputs against configured bounds and runs
// the annuity and growth math.
type CalculatorService struct {
	cfg    *config.Config
	logger *log.Logger
}

func NewCalculatorService(cfg *config.Config, logger *log.Logger) *CalculatorService {
	return &CalculatorService{
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentCalc),
	}
}

// Mortgage computes the financed principal and its amortization.
func (s *CalculatorService) Mortgage(in MortgageInput) (*MortgageResult, error) {
	if err := s.validateMortgage(in); err != nil {
		metrics.Calculations.WithLabelValues("mortgage", "invalid").Inc()
		return nil, err
	}

	principal := in.PropertyPrice - in.DownPayment
	downPct := 0.0
	if in.PropertyPrice > 0 {
		downPct = in.DownPayment / in.PropertyPrice * 100
	}

	sched := fincalc.BuildSchedule(principal, in.AnnualRate, in.TermMonths)

	costPct := 0.0
	if principal > 0 {
		costPct = sched.TotalInterest / principal * 100
	}

	metrics.Calculations.WithLabelValues("mortgage", "ok").Inc()
	s.logger.Debug("computed mortgage",
		log.FieldOperation, log.OpCompute,
		"principal", principal,
		"term_months", in.TermMonths)

	return &MortgageResult{
		Principal:          core.Round2(principal),
		DownPaymentPercent: core.Round2(downPct),
		MonthlyPayment:     core.Round2(sched.Payment),
		TotalPaid:          core.Round2(sched.TotalPaid),
		TotalInterest:      core.Round2(sched.TotalInterest),
		CostPercent:        core.Round2(costPct),
		Schedule:           sched.Rows,
	}, nil
}

// Credit computes an annuity loan schedule for the given principal.
func (s *CalculatorService) Credit(in CreditInput) (*CreditResult, error) {
	if err := s.validateCredit(in); err != nil {
		metrics.Calculations.WithLabelValues("credit", "invalid").Inc()
		return nil, err
	}

	sched := fincalc.BuildSchedule(in.Principal, in.AnnualRate, in.TermMonths)

	costPct := 0.0
	if in.Principal > 0 {
		costPct = sched.TotalInterest / in.Principal * 100
	}

	metrics.Calculations.WithLabelValues("credit", "ok").Inc()
	s.logger.Debug("computed credit",
		log.FieldOperation, log.OpCompute,
		"principal", in.Principal,
		"term_months", in.TermMonths)

	return &CreditResult{
		MonthlyPayment: core.Round2(sched.Payment),
		TotalPaid:      core.Round2(sched.TotalPaid),
		TotalInterest:  core.Round2(sched.TotalInterest),
		CostPercent:    core.Round2(costPct),
		Schedule:       sched.Rows,
	}, nil
}

// Investment projects balance growth over the requested horizon.
func (s *CalculatorService) Investment(in InvestmentInput) (*InvestmentResult, error) {
	if err := s.validateInvestment(in); err != nil {
		metrics.Calculations.WithLabelValues("investment", "invalid").Inc()
		return nil, err
	}

	proj := fincalc.ProjectGrowth(in.InitialAmount, in.MonthlyContribution, in.AnnualRate, in.HorizonYears, in.Mode)

	metrics.Calculations.WithLabelValues("investment", "ok").Inc()
	s.logger.Debug("computed investment projection",
		log.FieldOperation, log.OpCompute,
		"horizon_years", in.HorizonYears,
		"mode", string(in.Mode))

	return &InvestmentResult{
		FinalBalance:     core.Round2(proj.FinalBalance),
		TotalContributed: core.Round2(proj.TotalContributed),
		Profit:           core.Round2(proj.Profit),
		ProfitPercent:    core.Round2(proj.ProfitPercent),
		Yearly:           proj.Yearly,
	}, nil
}

func (s *CalculatorService) validateMortgage(in MortgageInput) error {
	if !core.IsFinite(in.PropertyPrice) || in.PropertyPrice <= 0 {
		return fmt.Errorf("%w: property price must be positive", core.ErrInvalidInput)
	}
	if !core.IsFinite(in.DownPayment) || in.DownPayment < 0 {
		return fmt.Errorf("%w: down payment must not be negative", core.ErrInvalidInput)
	}
	if in.DownPayment >= in.PropertyPrice {
		return fmt.Errorf("%w: down payment must be below the property price", core.ErrInvalidInput)
	}
	if in.PropertyPrice-in.DownPayment > s.cfg.MaxPrincipal {
		return fmt.Errorf("%w: financed amount exceeds limit of %.0f", core.ErrInvalidInput, s.cfg.MaxPrincipal)
	}
	return s.validateRateAndTerm(in.AnnualRate, in.TermMonths)
}

func (s *CalculatorService) validateCredit(in CreditInput) error {
	if !core.IsFinite(in.Principal) || in.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", core.ErrInvalidInput)
	}
	if in.Principal > s.cfg.MaxPrincipal {
		return fmt.Errorf("%w: principal exceeds limit of %.0f", core.ErrInvalidInput, s.cfg.MaxPrincipal)
	}
	return s.validateRateAndTerm(in.AnnualRate, in.TermMonths)
}

func (s *CalculatorService) validateInvestment(in InvestmentInput) error {
	if !core.IsFinite(in.InitialAmount) || in.InitialAmount < 0 {
		return fmt.Errorf("%w: initial amount must not be negative", core.ErrInvalidInput)
	}
	if in.InitialAmount > s.cfg.MaxPrincipal {
		return fmt.Errorf("%w: initial amount exceeds limit of %.0f", core.ErrInvalidInput, s.cfg.MaxPrincipal)
	}
	if !core.IsFinite(in.MonthlyContribution) || in.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution must not be negative", core.ErrInvalidInput)
	}
	if in.MonthlyContribution > s.cfg.MaxContribution {
		return fmt.Errorf("%w: monthly contribution exceeds limit of %.0f", core.ErrInvalidInput, s.cfg.MaxContribution)
	}
	if !core.IsFinite(in.AnnualRate) || in.AnnualRate < 0 || in.AnnualRate > s.cfg.MaxRatePercent {
		return fmt.Errorf("%w: annual rate must be between 0 and %.0f", core.ErrInvalidInput, s.cfg.MaxRatePercent)
	}
	if in.HorizonYears < 1 || in.HorizonYears > s.cfg.MaxHorizonYears {
		return fmt.Errorf("%w: horizon must be between 1 and %d years", core.ErrInvalidInput, s.cfg.MaxHorizonYears)
	}
	if !in.Mode.Valid() {
		return fmt.Errorf("%w: mode must be compound or simple", core.ErrInvalidInput)
	}
	return nil
}

func (s *CalculatorService) validateRateAndTerm(annualRate float64, termMonths int) error {
	if !core.IsFinite(annualRate) || annualRate < 0 || annualRate > s.cfg.MaxRatePercent {
		return fmt.Errorf("%w: annual rate must be between 0 and %.0f", core.ErrInvalidInput, s.cfg.MaxRatePercent)
	}
	if termMonths < 1 || termMonths > s.cfg.MaxTermMonths {
		return fmt.Errorf("%w: term must be between 1 and %d months", core.ErrInvalidInput, s.cfg.MaxTermMonths)
	}
	return nil
}
