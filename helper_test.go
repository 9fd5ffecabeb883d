package depotskat

import "github.com/bkrogh/depotskat/date"

func day(s string) date.Date { return date.MustParse(s) }

func buyTx(on, ticker string, qty, price float64, account string) Transaction {
	return Transaction{Date: day(on), Op: Buy, Category: Stock, Ticker: ticker, Quantity: qty, Price: price, Account: account, Currency: BaseCurrency}
}

func sellTx(on, ticker string, qty, price float64, account string) Transaction {
	return Transaction{Date: day(on), Op: Sell, Category: Stock, Ticker: ticker, Quantity: -qty, Price: price, Account: account, Currency: BaseCurrency}
}

func etfBuyTx(on, ticker string, qty, price float64, account string) Transaction {
	tx := buyTx(on, ticker, qty, price, account)
	tx.Category = ETF
	return tx
}

func etfSellTx(on, ticker string, qty, price float64, account string) Transaction {
	tx := sellTx(on, ticker, qty, price, account)
	tx.Category = ETF
	return tx
}

func dkk(v float64) Money { return M(v, BaseCurrency) }
