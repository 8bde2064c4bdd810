package preprocess

import (
	"gonum.org/v1/gonum/stat"
)

// autocorr returns the sample autocorrelation function at lags 0..nlags using
// the standard biased estimator (lag-k covariance over lag-0 variance).
func autocorr(x []float64, nlags int) []float64 {
	n := len(x)
	out := make([]float64, nlags+1)
	if n == 0 {
		return out
	}

	mean := stat.Mean(x, nil)
	var denom float64
	for _, v := range x {
		d := v - mean
		denom += d * d
	}
	out[0] = 1
	if denom == 0 {
		return out
	}
	for k := 1; k <= nlags && k < n; k++ {
		var num float64
		for t := k; t < n; t++ {
			num += (x[t] - mean) * (x[t-k] - mean)
		}
		out[k] = num / denom
	}
	return out
}

// pacf returns the partial autocorrelation function at lags 0..nlags via the
// Levinson-Durbin recursion over the sample ACF (Yule-Walker estimates).
func pacf(x []float64, nlags int) []float64 {
	r := autocorr(x, nlags)
	out := make([]float64, nlags+1)
	out[0] = 1
	if nlags < 1 {
		return out
	}

	phi := make([][]float64, nlags+1)
	for k := range phi {
		phi[k] = make([]float64, nlags+1)
	}
	phi[1][1] = r[1]
	out[1] = r[1]

	for k := 2; k <= nlags; k++ {
		var num, den float64
		num = r[k]
		den = 1
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * r[k-j]
			den -= phi[k-1][j] * r[j]
		}
		if den == 0 {
			break
		}
		phi[k][k] = num / den
		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
		out[k] = phi[k][k]
	}
	return out
}
