// Package italnum parses the Italian-locale numbers found in the MEF surtax
// dataset: comma-decimal percentage rates and euro amounts embedded in band
// descriptions ("fino a euro 28.000,00").
package italnum
