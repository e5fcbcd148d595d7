// SPDX-License-Identifier: MIT

// Package experience estimates the "years of experience" figure shown in
// the portfolio hero section.
//
// An explicit override on the personal profile wins. Otherwise every
// experience record's free-text period is scanned for four-digit years in
// 1900-2099 and the figure is the current year minus the most recent year
// found anywhere. With nothing to go on the estimate is DefaultYears.
package experience
