package services

import (
	"math"
	"testing"

	"akfinance/internal/config"
	"akfinance/internal/fincalc"
	"akfinance/internal/log"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxPrincipal:    50_000_000,
		MaxRatePercent:  100,
		MaxTermMonths:   480,
		MaxHorizonYears: 40,
		MaxContribution: 500_000,
	}
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestMortgage(t *testing.T) {
	svc := NewCalculatorService(testConfig(), testLogger())

	res, err := svc.Mortgage(MortgageInput{
		PropertyPrice: 5_000_000,
		DownPayment:   1_000_000,
		AnnualRate:    12,
		TermMonths:    240,
	})
	if err != nil {
		t.Fatalf("Mortgage failed: %v", err)
	}

	if res.Principal != 4_000_000 {
		t.Errorf("Principal = %v, want 4000000", res.Principal)
	}
	if res.DownPaymentPercent != 20 {
		t.Errorf("DownPaymentPercent = %v, want 20", res.DownPaymentPercent)
	}
	if math.Abs(res.MonthlyPayment-44037.51) > 1 {
		t.Errorf("MonthlyPayment = %v, want about 44037.51", res.MonthlyPayment)
	}
	if math.Abs(res.TotalInterest-6_569_002) > 1000 {
		t.Errorf("TotalInterest = %v, want about 6569002", res.TotalInterest)
	}
	if len(res.Schedule) != 240 {
		t.Errorf("len(Schedule) = %d, want 240", len(res.Schedule))
	}
	wantCost := res.TotalInterest / res.Principal * 100
	if math.Abs(res.CostPercent-wantCost) > 0.1 {
		t.Errorf("CostPercent = %v, want about %v", res.CostPercent, wantCost)
	}
}

func TestMortgageValidation(t *testing.T) {
	svc := NewCalculatorService(testConfig(), testLogger())

	tests := []struct {
		name string
		in   MortgageInput
	}{
		{"zero price", MortgageInput{PropertyPrice: 0, AnnualRate: 10, TermMonths: 120}},
		{"down payment above price", MortgageInput{PropertyPrice: 100, DownPayment: 200, AnnualRate: 10, TermMonths: 120}},
		{"down payment equals price", MortgageInput{PropertyPrice: 100, DownPayment: 100, AnnualRate: 10, TermMonths: 120}},
		{"negative rate", MortgageInput{PropertyPrice: 100_000, AnnualRate: -1, TermMonths: 120}},
		{"rate above cap", MortgageInput{PropertyPrice: 100_000, AnnualRate: 150, TermMonths: 120}},
		{"zero term", MortgageInput{PropertyPrice: 100_000, AnnualRate: 10, TermMonths: 0}},
		{"term above cap", MortgageInput{PropertyPrice: 100_000, AnnualRate: 10, TermMonths: 481}},
		{"principal above cap", MortgageInput{PropertyPrice: 60_000_000, AnnualRate: 10, TermMonths: 120}},
		{"NaN price", MortgageInput{PropertyPrice: math.NaN(), AnnualRate: 10, TermMonths: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Mortgage(tt.in); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCredit(t *testing.T) {
	svc := NewCalculatorService(testConfig(), testLogger())

	res, err := svc.Credit(CreditInput{Principal: 500_000, AnnualRate: 18, TermMonths: 24})
	if err != nil {
		t.Fatalf("Credit failed: %v", err)
	}

	if math.Abs(res.MonthlyPayment-24963.83) > 1 {
		t.Errorf("MonthlyPayment = %v, want about 24963.83", res.MonthlyPayment)
	}
	first := res.Schedule[0]
	if math.Abs(first.InterestPortion-7500) > 0.01 {
		t.Errorf("first interest = %v, want 7500", first.InterestPortion)
	}
	if math.Abs(first.PrincipalPortion-(res.MonthlyPayment-7500)) > 1 {
		t.Errorf("first principal = %v, want payment minus interest", first.PrincipalPortion)
	}
	if last := res.Schedule[len(res.Schedule)-1]; last.RemainingBalance != 0 {
		t.Errorf("final balance = %v, want 0", last.RemainingBalance)
	}
}

func TestInvestment(t *testing.T) {
	svc := NewCalculatorService(testConfig(), testLogger())

	res, err := svc.Investment(InvestmentInput{
		InitialAmount:       100_000,
		MonthlyContribution: 10_000,
		AnnualRate:          15,
		HorizonYears:        1,
		Mode:                fincalc.Compound,
	})
	if err != nil {
		t.Fatalf("Investment failed: %v", err)
	}

	if res.TotalContributed != 220_000 {
		t.Errorf("TotalContributed = %v, want 220000", res.TotalContributed)
	}
	if res.Profit <= 0 {
		t.Errorf("Profit = %v, want positive", res.Profit)
	}
	if len(res.Yearly) != 1 {
		t.Errorf("len(Yearly) = %d, want 1", len(res.Yearly))
	}
}

func TestInvestmentValidation(t *testing.T) {
	svc := NewCalculatorService(testConfig(), testLogger())

	tests := []struct {
		name string
		in   InvestmentInput
	}{
		{"negative initial", InvestmentInput{InitialAmount: -1, AnnualRate: 10, HorizonYears: 5, Mode: fincalc.Compound}},
		{"contribution above cap", InvestmentInput{MonthlyContribution: 600_000, AnnualRate: 10, HorizonYears: 5, Mode: fincalc.Compound}},
		{"zero horizon", InvestmentInput{AnnualRate: 10, HorizonYears: 0, Mode: fincalc.Compound}},
		{"horizon above cap", InvestmentInput{AnnualRate: 10, HorizonYears: 41, Mode: fincalc.Compound}},
		{"bad mode", InvestmentInput{AnnualRate: 10, HorizonYears: 5, Mode: "linear"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Investment(tt.in); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
