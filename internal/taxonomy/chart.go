package taxonomy

// MainCategory is one top-level section of the chart of accounts.
// Flat categories hold their accounts in a single unnamed sub-group.
type MainCategory struct {
	Name   string
	Groups []SubGroup
}

// SubGroup is the optional middle level of the chart. Name is empty for
// accounts that sit directly under a main category.
type SubGroup struct {
	Name     string
	Accounts []string
}

// Chart is the fixed chart of accounts for an FTA small-business filing.
// Account names are assumed unique across the whole chart; resolution
// depends on that. Iteration order is the declared order below and is
// part of the resolver contract.
var Chart = []MainCategory{
	{
		Name: "Revenue",
		Groups: []SubGroup{
			{Accounts: []string{
				"Sales Revenue",
				"Service Revenue",
				"Other Operating Revenue",
			}},
		},
	},
	{
		Name: "Cost of Revenue",
		Groups: []SubGroup{
			{Accounts: []string{
				"Cost of Goods Sold",
				"Direct Labour",
				"Subcontractor Costs",
			}},
		},
	},
	{
		Name: "Expenses",
		Groups: []SubGroup{
			{Name: "Administrative", Accounts: []string{
				"Salaries & Wages",
				"Rent Expense",
				"Office Supplies & Stationery",
				"Utilities",
				"Telephone & Internet",
				"License & Government Fees",
			}},
			{Name: "Selling & Distribution", Accounts: []string{
				"Advertising & Marketing",
				"Travel & Entertainment",
				"Delivery Charges",
			}},
			{Name: "Finance", Accounts: []string{
				"Bank Charges",
				"Interest Expense",
			}},
		},
	},
	{
		Name: "Other Income",
		Groups: []SubGroup{
			{Accounts: []string{
				"Interest Income",
				"Foreign Exchange Gain",
			}},
		},
	},
	{
		Name: "Assets",
		Groups: []SubGroup{
			{Name: "Current Assets", Accounts: []string{
				"Bank Accounts",
				"Cash on Hand",
				"Accounts Receivable",
				"Inventory",
				"Prepaid Expenses",
				"VAT Receivable",
			}},
			{Name: "Non-Current Assets", Accounts: []string{
				"Property, Plant & Equipment",
				"Accumulated Depreciation",
				"Intangible Assets",
			}},
		},
	},
	{
		Name: "Liabilities",
		Groups: []SubGroup{
			{Name: "Current Liabilities", Accounts: []string{
				"Accounts Payable",
				"Accrued Expenses",
				"VAT Payable",
				"Corporate Tax Payable",
			}},
			{Name: "Non-Current Liabilities", Accounts: []string{
				"Long-Term Loans",
				"End of Service Benefits",
			}},
		},
	},
	{
		Name: "Equity",
		Groups: []SubGroup{
			{Accounts: []string{
				"Share Capital",
				"Retained Earnings",
				"Owner's Current Account",
			}},
		},
	},
}

// Leaf describes one account together with its position in the chart.
type Leaf struct {
	Main    string
	Sub     string // empty when the main category is flat
	Account string
}

// Path renders the canonical path string for the leaf, using the chart's
// original casing.
func (l Leaf) Path() string {
	if l.Sub == "" {
		return l.Main + Separator + l.Account
	}
	return l.Main + Separator + l.Sub + Separator + l.Account
}

// Leaves returns every account in chart iteration order.
func Leaves() []Leaf {
	var out []Leaf
	for _, main := range Chart {
		for _, group := range main.Groups {
			for _, name := range group.Accounts {
				out = append(out, Leaf{Main: main.Name, Sub: group.Name, Account: name})
			}
		}
	}
	return out
}
