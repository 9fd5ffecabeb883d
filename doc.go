// Package depotskat computes the value, performance and Danish tax position
// of a private brokerage portfolio from its raw transaction history. It is
// designed as a pure function over its inputs: given the same transactions,
// prices and configuration it produces the same result, performs no I/O and
// keeps no state between computations.
//
// The core functionalities include:
//   - Classification: turning loosely structured broker export rows into
//     typed transactions, inferring the operation from signs and note text.
//   - Cost-basis ledger: average-cost pools kept globally per ticker for
//     realization-taxed assets and locally per position for inventory-taxed
//     ones, producing realized gains and current positions.
//   - Yearly tax reports: share income under the two-bracket progression,
//     flat capital income, the favored flat-rate account, and per-regime
//     loss carry-forward across years.
//   - Daily valuation: a day-by-day replay producing a flow-adjusted
//     time-weighted growth series for the whole portfolio and per ticker,
//     with a running estimate of the tax owed on liquidation.
//   - Data persistence: JSONL encoding of rows and quote histories, with a
//     compact packed form for multi-year daily price series.
//
// This package is the foundational logic for the `depotskat` command-line
// tool.
package depotskat
