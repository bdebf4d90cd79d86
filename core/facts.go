package core

// EmploymentType classifies how a position is held. Values follow the
// schema.org employmentType vocabulary so they can feed structured data
// directly.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContractor EmploymentType = "CONTRACTOR"
	EmploymentIntern     EmploymentType = "INTERN"
	EmploymentTemporary  EmploymentType = "TEMPORARY"
)

// SalaryUnit is the period a salary amount refers to.
type SalaryUnit string

const (
	SalaryPerHour  SalaryUnit = "HOUR"
	SalaryPerDay   SalaryUnit = "DAY"
	SalaryPerWeek  SalaryUnit = "WEEK"
	SalaryPerMonth SalaryUnit = "MONTH"
	SalaryPerYear  SalaryUnit = "YEAR"
)

// SalaryFact is a salary statement recovered from free text. It is only
// emitted when a currency token was found and at least one bound was parsed;
// Max is 0 when only a lower bound was recognized.
type SalaryFact struct {
	Currency string
	Unit     SalaryUnit
	Min      int64
	Max      int64
	HasMin   bool
	HasMax   bool
}

// LocationFact is never empty: Country always carries an ISO 3166-1 alpha-2
// code; City may be blank when no known city matched.
type LocationFact struct {
	Country string
	City    string
}

// Facts bundles the structured facts derived from a posting's free text.
type Facts struct {
	Employment           EmploymentType
	Remote               bool
	Salary               *SalaryFact // nil when no salary was recognized
	Experience           string      // empty when no requirement was stated
	ExperienceEquivalent bool        // equivalent experience may substitute for education
	Location             LocationFact
}
