package usecase

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)
