package fta

// Fixed account-label groups feeding each form line. Lookups are by exact
// account name against the trial balance; accounts missing from the table
// contribute zero.
var (
	operatingRevenueLabels = []string{
		"Sales Revenue",
		"Service Revenue",
		"Other Operating Revenue",
	}

	costOfRevenueLabels = []string{
		"Cost of Goods Sold",
		"Direct Labour",
		"Subcontractor Costs",
	}

	administrativeLabels = []string{
		"Salaries & Wages",
		"Rent Expense",
		"Office Supplies & Stationery",
		"Utilities",
		"Telephone & Internet",
		"License & Government Fees",
	}

	sellingLabels = []string{
		"Advertising & Marketing",
		"Travel & Entertainment",
		"Delivery Charges",
	}

	financeCostLabels = []string{
		"Bank Charges",
		"Interest Expense",
	}

	otherIncomeLabels = []string{
		"Interest Income",
		"Foreign Exchange Gain",
	}

	currentAssetLabels = []string{
		"Bank Accounts",
		"Cash on Hand",
		"Accounts Receivable",
		"Inventory",
		"Prepaid Expenses",
		"VAT Receivable",
	}

	nonCurrentAssetLabels = []string{
		"Property, Plant & Equipment",
		"Accumulated Depreciation",
		"Intangible Assets",
	}

	currentLiabilityLabels = []string{
		"Accounts Payable",
		"Accrued Expenses",
		"VAT Payable",
		"Corporate Tax Payable",
	}

	nonCurrentLiabilityLabels = []string{
		"Long-Term Loans",
		"End of Service Benefits",
	}

	equityLabels = []string{
		"Share Capital",
		"Retained Earnings",
		"Owner's Current Account",
	}
)
