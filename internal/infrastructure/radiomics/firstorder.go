package radiomics

// firstOrderFeatures статистики исходных интенсивностей внутри очага.
type firstOrderFeatures struct {
	Maximum float64
}

func computeFirstOrder(r *roi) firstOrderFeatures {
	return firstOrderFeatures{Maximum: r.maximum}
}
