package domain

// CompanyInfo is the issuing company's profile printed on every document.
// RC is the trade registry number, NIF the tax id, NIS the statistical id
// and AI the article d'imposition.
type CompanyInfo struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	RC          string `json:"rc"`
	NIF         string `json:"nif"`
	NIS         string `json:"nis"`
	AI          string `json:"ai"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
}

// DefaultCompany returns the built-in profile used until the operator saves one
func DefaultCompany() CompanyInfo {
	return CompanyInfo{
		Name:        "Innovation Services Numériques",
		Address:     "Cité 1200 Logements, Dar El Beïda, Alger",
		Phone:       "+213 23 45 67 89",
		RC:          "16/00-9876543B21",
		NIF:         "001916012345678",
		NIS:         "192016001234567",
		AI:          "16011234567",
		BankName:    "Crédit Populaire d'Algérie (CPA)",
		BankAccount: "004 00123 4123456789 22",
	}
}
