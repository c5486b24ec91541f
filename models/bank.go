package models

// BankDetails is a singleton document, overwritten in place.
type BankDetails struct {
	BankName       string `bson:"bank_name" json:"bank_name"`
	IFSC           string `bson:"ifsc" json:"ifsc"`
	AccountNumber  string `bson:"account_number" json:"account_number"`
	BankHolderName string `bson:"bank_holder_name" json:"bank_holder_name"`
}
