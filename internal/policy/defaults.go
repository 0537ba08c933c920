package policy

import "github.com/shopspring/decimal"

// Default returns the compiled-in 2025-26 policy set. Values mirror the
// published 2025 US federal brackets, UK 2025-26 rates, and India FY 2025-26
// (post Budget 2023 surcharge cap).
func Default() *Set {
	return &Set{
		US:               defaultUS(),
		UK:               defaultUK(),
		India:            defaultIndia(),
		MortgageRates:    defaultMortgageRates(),
		StudentLoanRates: defaultStudentLoanRates(),
		CreditCardAvgAPR: decimal.NewFromFloat(21.5),
		PersonalLoanAPR:  defaultPersonalLoanAPR(),
		CreditScoreTiers: defaultCreditScoreTiers(),
		Investment:       defaultInvestmentPresets(),
		CPI:              defaultCPI(),
	}
}

func defaultUS() USPolicy {
	return USPolicy{
		StandardDeduction: map[string]decimal.Decimal{
			"single": decimal.NewFromInt(15000),
			"mfj":    decimal.NewFromInt(30000),
			"hoh":    decimal.NewFromInt(22500),
		},
		Brackets: map[string]BracketTable{
			"single": {
				UpTo(11925, 0.10), UpTo(48475, 0.12), UpTo(103350, 0.22),
				UpTo(197300, 0.24), UpTo(250525, 0.32), UpTo(626350, 0.35), Top(0.37),
			},
			"mfj": {
				UpTo(23850, 0.10), UpTo(96950, 0.12), UpTo(206700, 0.22),
				UpTo(394600, 0.24), UpTo(501050, 0.32), UpTo(751600, 0.35), Top(0.37),
			},
			"hoh": {
				UpTo(17000, 0.10), UpTo(64850, 0.12), UpTo(103350, 0.22),
				UpTo(197300, 0.24), UpTo(250500, 0.32), UpTo(626350, 0.35), Top(0.37),
			},
		},
		FICA: FICA{
			SSRate:                 decimal.NewFromFloat(0.062),
			SSWageBase:             decimal.NewFromInt(176100),
			MedicareRate:           decimal.NewFromFloat(0.0145),
			AdditionalMedicareRate: decimal.NewFromFloat(0.009),
			AdditionalMedicareThreshold: map[string]decimal.Decimal{
				"single": decimal.NewFromInt(200000),
				"mfj":    decimal.NewFromInt(250000),
			},
		},
		// Simplified flat effective rates for major states.
		StateTax: map[string]decimal.Decimal{
			"CA":    decimal.NewFromFloat(0.093),
			"NY":    decimal.NewFromFloat(0.0685),
			"NJ":    decimal.NewFromFloat(0.0637),
			"MA":    decimal.NewFromFloat(0.05),
			"IL":    decimal.NewFromFloat(0.0495),
			"TX":    decimal.Zero,
			"FL":    decimal.Zero,
			"WA":    decimal.Zero,
			"NV":    decimal.Zero,
			"AK":    decimal.Zero,
			"other": decimal.NewFromFloat(0.05),
		},
		LTCGBrackets: map[string]BracketTable{
			"single": {UpTo(48350, 0.0), UpTo(533400, 0.15), Top(0.20)},
			"mfj":    {UpTo(96700, 0.0), UpTo(600050, 0.15), Top(0.20)},
		},
		NIITRate: decimal.NewFromFloat(0.038),
		NIITThreshold: map[string]decimal.Decimal{
			"single": decimal.NewFromInt(200000),
			"mfj":    decimal.NewFromInt(250000),
		},
		LTCGHoldingMonths: 12,
	}
}

func defaultUK() UKPolicy {
	return UKPolicy{
		PersonalAllowance: decimal.NewFromInt(12570),
		TaperStart:        decimal.NewFromInt(100000),
		TaperEnd:          decimal.NewFromInt(125140),
		Brackets: BracketTable{
			UpTo(50270, 0.20), UpTo(125140, 0.40), Top(0.45),
		},
		NIEmployee: UKNIEmployee{
			LowerEarningsLimit: decimal.NewFromInt(6396),
			UpperEarningsLimit: decimal.NewFromInt(50270),
			RateMain:           decimal.NewFromFloat(0.08),
			RateUpper:          decimal.NewFromFloat(0.02),
		},
		NISelfEmployed: UKNISelfEmployed{
			Class2Annual:    decimal.NewFromInt(179),
			Class4Lower:     decimal.NewFromInt(12570),
			Class4Upper:     decimal.NewFromInt(50270),
			Class4RateMain:  decimal.NewFromFloat(0.06),
			Class4RateUpper: decimal.NewFromFloat(0.02),
		},
		CGT: UKCGT{
			AnnualExempt:        decimal.NewFromInt(3000),
			BasicRate:           decimal.NewFromFloat(0.18),
			HigherRate:          decimal.NewFromFloat(0.24),
			HigherRateThreshold: decimal.NewFromInt(50270),
		},
	}
}

func defaultIndia() IndiaPolicy {
	return IndiaPolicy{
		NewRegime: IndiaRegime{
			StandardDeduction: decimal.NewFromInt(75000),
			Brackets: BracketTable{
				UpTo(400000, 0.0), UpTo(800000, 0.05), UpTo(1200000, 0.10),
				UpTo(1600000, 0.15), UpTo(2000000, 0.20), UpTo(2400000, 0.25), Top(0.30),
			},
			Rebate87ALimit: decimal.NewFromInt(1200000),
			CessRate:       decimal.NewFromFloat(0.04),
		},
		OldRegime: IndiaRegime{
			StandardDeduction: decimal.NewFromInt(50000),
			Brackets: BracketTable{
				UpTo(250000, 0.0), UpTo(500000, 0.05), UpTo(1000000, 0.20), Top(0.30),
			},
			Rebate87ALimit: decimal.NewFromInt(500000),
			CessRate:       decimal.NewFromFloat(0.04),
		},
		// Surcharge on tax, slabbed by income; capped at 25% under the new regime.
		Surcharge: BracketTable{
			UpTo(5000000, 0.0), UpTo(10000000, 0.10), UpTo(20000000, 0.15),
			UpTo(50000000, 0.25), Top(0.25),
		},
		CGT: IndiaCGT{
			EquityLTCGRate:        decimal.NewFromFloat(0.125),
			EquityLTCGExemption:   decimal.NewFromInt(125000),
			EquitySTCGRate:        decimal.NewFromFloat(0.20),
			PropertyLTCGRate:      decimal.NewFromFloat(0.20),
			OtherLTCGRate:         decimal.NewFromFloat(0.20),
			EquityHoldingMonths:   12,
			PropertyHoldingMonths: 24,
		},
	}
}

func defaultMortgageRates() map[string]MortgageRate {
	mr := func(r30, r15 float64, label string) MortgageRate {
		return MortgageRate{Rate30Year: decimal.NewFromFloat(r30), Rate15Year: decimal.NewFromFloat(r15), Label: label}
	}
	return map[string]MortgageRate{
		"US": mr(6.7, 6.2, "United States"),
		"UK": mr(4.8, 4.3, "United Kingdom"),
		"DE": mr(3.7, 3.2, "Germany"),
		"FR": mr(3.9, 3.4, "France"),
		"IN": mr(9.0, 8.7, "India"),
		"SG": mr(3.8, 3.4, "Singapore"),
		"JP": mr(1.0, 0.8, "Japan"),
		"CN": mr(3.5, 3.2, "China"),
	}
}

func defaultStudentLoanRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"undergrad":   decimal.NewFromFloat(6.53),
		"grad":        decimal.NewFromFloat(8.08),
		"parent_plus": decimal.NewFromFloat(9.08),
	}
}

func defaultPersonalLoanAPR() []APRTier {
	tier := func(min, max int, low, high float64) APRTier {
		return APRTier{MinScore: min, MaxScore: max, APRLow: decimal.NewFromFloat(low), APRHigh: decimal.NewFromFloat(high)}
	}
	return []APRTier{
		tier(750, 850, 7.5, 12.0),
		tier(720, 749, 12.0, 17.0),
		tier(680, 719, 17.0, 21.0),
		tier(640, 679, 21.0, 28.0),
		tier(580, 639, 28.0, 36.0),
		tier(300, 579, 36.0, 36.0),
	}
}

func defaultCreditScoreTiers() []ScoreTier {
	return []ScoreTier{
		{750, "Excellent"}, {720, "Very Good"}, {680, "Good"},
		{640, "Fair"}, {580, "Poor"}, {0, "Very Poor"},
	}
}

func defaultInvestmentPresets() InvestmentPresets {
	return InvestmentPresets{
		Employee401kLimit:       decimal.NewFromInt(23500),
		FIRESafeWithdrawalRate:  decimal.NewFromFloat(4.0),
		DefaultInflation:        decimal.NewFromFloat(2.5),
		DefaultInvestmentReturn: decimal.NewFromFloat(7.0),
	}
}

func series(min, max int, values map[int]float64) CPISeries {
	idx := make(map[int]decimal.Decimal, len(values))
	for year, v := range values {
		idx[year] = decimal.NewFromFloat(v)
	}
	return CPISeries{MinYear: min, MaxYear: max, Index: idx}
}

func defaultCPI() map[string]CPISeries {
	// Annual average BLS CPI-U, base 1982-84=100.
	usCPI := map[int]float64{
		1913: 9.9, 1914: 10.0, 1915: 10.1, 1916: 10.9, 1917: 12.8,
		1918: 15.1, 1919: 17.3, 1920: 20.0, 1921: 17.9, 1922: 16.8,
		1923: 17.1, 1924: 17.1, 1925: 17.5, 1926: 17.7, 1927: 17.4,
		1928: 17.1, 1929: 17.1, 1930: 16.7, 1931: 15.2, 1932: 13.7,
		1933: 13.0, 1934: 13.4, 1935: 13.7, 1936: 13.9, 1937: 14.4,
		1938: 14.1, 1939: 13.9, 1940: 14.0, 1941: 14.7, 1942: 16.3,
		1943: 17.3, 1944: 17.6, 1945: 18.0, 1946: 19.5, 1947: 22.3,
		1948: 24.1, 1949: 23.8, 1950: 24.1, 1951: 26.0, 1952: 26.5,
		1953: 26.7, 1954: 26.9, 1955: 26.8, 1956: 27.2, 1957: 28.1,
		1958: 28.9, 1959: 29.1, 1960: 29.6, 1961: 29.9, 1962: 30.2,
		1963: 30.6, 1964: 31.0, 1965: 31.5, 1966: 32.4, 1967: 33.4,
		1968: 34.8, 1969: 36.7, 1970: 38.8, 1971: 40.5, 1972: 41.8,
		1973: 44.4, 1974: 49.3, 1975: 53.8, 1976: 56.9, 1977: 60.6,
		1978: 65.2, 1979: 72.6, 1980: 82.4, 1981: 90.9, 1982: 96.5,
		1983: 99.6, 1984: 103.9, 1985: 107.6, 1986: 109.6, 1987: 113.6,
		1988: 118.3, 1989: 124.0, 1990: 130.7, 1991: 136.2, 1992: 140.3,
		1993: 144.5, 1994: 148.2, 1995: 152.4, 1996: 156.9, 1997: 160.5,
		1998: 163.0, 1999: 166.6, 2000: 172.2, 2001: 177.1, 2002: 179.9,
		2003: 184.0, 2004: 188.9, 2005: 195.3, 2006: 201.6, 2007: 207.3,
		2008: 215.3, 2009: 214.5, 2010: 218.1, 2011: 224.9, 2012: 229.6,
		2013: 233.0, 2014: 236.7, 2015: 237.0, 2016: 240.0, 2017: 245.1,
		2018: 251.1, 2019: 255.7, 2020: 258.8, 2021: 271.0, 2022: 292.7,
		2023: 304.7, 2024: 314.2,
	}
	// Eurostat HICP, 2015=100.
	euHICP := map[int]float64{
		2000: 75.8, 2001: 77.6, 2002: 79.3, 2003: 80.9, 2004: 82.7,
		2005: 84.8, 2006: 86.9, 2007: 88.7, 2008: 91.5, 2009: 91.7,
		2010: 93.5, 2011: 96.2, 2012: 98.7, 2013: 99.9, 2014: 100.1,
		2015: 100.0, 2016: 100.2, 2017: 101.8, 2018: 103.6, 2019: 104.3,
		2020: 104.3, 2021: 108.0, 2022: 116.9, 2023: 124.6, 2024: 128.3,
	}
	// India CPI (General), 2012=100 rebased.
	indiaCPI := map[int]float64{
		2000: 55.2, 2001: 56.8, 2002: 59.2, 2003: 61.5, 2004: 63.0,
		2005: 65.8, 2006: 70.2, 2007: 75.3, 2008: 82.0, 2009: 91.4,
		2010: 100.0, 2011: 108.9, 2012: 117.3, 2013: 126.1, 2014: 133.3,
		2015: 137.9, 2016: 143.0, 2017: 149.0, 2018: 153.7, 2019: 158.6,
		2020: 164.8, 2021: 172.5, 2022: 185.2, 2023: 196.4, 2024: 204.1,
	}
	return map[string]CPISeries{
		"US": series(1913, 2024, usCPI),
		"EU": series(2000, 2024, euHICP),
		"IN": series(2000, 2024, indiaCPI),
	}
}
