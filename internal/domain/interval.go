package domain

// Límites de minuto que el bucketizer acepta. Fuera de [0, MaxMatchMinute]
// el minuto se considera malformado y el evento no se asigna a ningún bucket.
const (
	HalfTimeMinute = 45
	FullTimeMinute = 90
	MaxMatchMinute = 120
)

// IntervalBucket es un rango fijo de minutos con límites cerrados.
type IntervalBucket struct {
	Label string
	From  int
	To    int
}

// Buckets fijos compartidos por los analizadores de goles, córners y tarjetas.
// 31-45 absorbe el descuento de la primera parte y 76-90 todo lo posterior al 90.
var defaultBuckets = []IntervalBucket{
	{Label: "0-15", From: 0, To: 15},
	{Label: "16-30", From: 16, To: 30},
	{Label: "31-45", From: 31, To: 45},
	{Label: "46-60", From: 46, To: 60},
	{Label: "61-75", From: 61, To: 75},
	{Label: "76-90", From: 76, To: MaxMatchMinute},
}

// Ventanas sintéticas de "córner tardío", independientes de los seis buckets.
var (
	LateFirstHalfWindow = IntervalBucket{Label: "37-HT", From: 37, To: HalfTimeMinute}
	LateMatchWindow     = IntervalBucket{Label: "87-FT", From: 87, To: MaxMatchMinute}
)

// IntervalBucketizer clasifica minutos en buckets.
type IntervalBucketizer struct {
	buckets []IntervalBucket
}

// NewIntervalBucketizer crea el bucketizer con los seis buckets estándar.
func NewIntervalBucketizer() *IntervalBucketizer {
	return &IntervalBucketizer{buckets: defaultBuckets}
}

// Buckets devuelve una copia de los buckets en orden.
func (b *IntervalBucketizer) Buckets() []IntervalBucket {
	out := make([]IntervalBucket, len(b.buckets))
	copy(out, b.buckets)
	return out
}

// Labels devuelve las etiquetas en orden.
func (b *IntervalBucketizer) Labels() []string {
	labels := make([]string, len(b.buckets))
	for i, bk := range b.buckets {
		labels[i] = bk.Label
	}
	return labels
}

// Index devuelve la posición del bucket para el minuto dado.
// El descuento (extra > 0) se asigna al bucket de su minuto base: 45+2 cae en
// 31-45, 90+4 en 76-90. ok=false si el minuto está malformado.
func (b *IntervalBucketizer) Index(minute, extra int) (int, bool) {
	if !ValidMinute(minute, extra) {
		return 0, false
	}
	for i, bk := range b.buckets {
		if minute >= bk.From && minute <= bk.To {
			return i, true
		}
	}
	return 0, false
}

// Bucket devuelve la etiqueta del bucket para el minuto dado.
func (b *IntervalBucketizer) Bucket(minute, extra int) (string, bool) {
	i, ok := b.Index(minute, extra)
	if !ok {
		return "", false
	}
	return b.buckets[i].Label, true
}

// Contains devuelve true si el minuto cae dentro de la ventana.
func (w IntervalBucket) Contains(minute, extra int) bool {
	if !ValidMinute(minute, extra) {
		return false
	}
	return minute >= w.From && minute <= w.To
}

// ValidMinute devuelve true si el minuto es utilizable para clasificar.
func ValidMinute(minute, extra int) bool {
	return minute >= 0 && minute <= MaxMatchMinute && extra >= 0
}

// IsFirstHalf devuelve true si el minuto pertenece a la primera parte (45+x incluido).
func IsFirstHalf(minute int) bool {
	return minute <= HalfTimeMinute
}

// EventBefore ordena eventos por (minuto, minuto extra) ascendente.
func EventBefore(a, b Event) bool {
	if a.Minute != b.Minute {
		return a.Minute < b.Minute
	}
	return a.ExtraMinute < b.ExtraMinute
}
