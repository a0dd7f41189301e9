package titlekit

// Title is a cleaned record from the title.basics dump. Pointer fields are
// nil when the source value was the null sentinel or failed coercion.
type Title struct {
	ID             string
	TitleType      *string
	PrimaryTitle   *string
	OriginalTitle  *string
	IsAdult        *bool
	StartYear      *int64
	EndYear        *int64
	RuntimeMinutes *int64
	Genres         *string
}

// Rating is a cleaned record from the title.ratings dump.
type Rating struct {
	ID            string
	AverageRating *float64
	NumVotes      *int64
}

// MovieRating is the union of a Title and a Rating sharing a title id.
type MovieRating struct {
	ID             string
	TitleType      *string
	PrimaryTitle   *string
	OriginalTitle  *string
	IsAdult        *bool
	StartYear      *int64
	EndYear        *int64
	RuntimeMinutes *int64
	Genres         *string
	AverageRating  *float64
	NumVotes       *int64
}

// BindTitle lifts a cleaned basic record into its typed shape.
func BindTitle(rec Record) Title {
	return Title{
		ID:             keyField(rec, "tconst"),
		TitleType:      strField(rec, "titleType"),
		PrimaryTitle:   strField(rec, "primaryTitle"),
		OriginalTitle:  strField(rec, "originalTitle"),
		IsAdult:        boolField(rec, "isAdult"),
		StartYear:      intField(rec, "startYear"),
		EndYear:        intField(rec, "endYear"),
		RuntimeMinutes: intField(rec, "runtimeMinutes"),
		Genres:         strField(rec, "genres"),
	}
}

// BindRating lifts a cleaned rating record into its typed shape.
func BindRating(rec Record) Rating {
	return Rating{
		ID:            keyField(rec, "tconst"),
		AverageRating: floatField(rec, "averageRating"),
		NumVotes:      intField(rec, "numVotes"),
	}
}

// Merge flattens a joined (title, rating) pair into one record. Fields both
// sides define take the rating side's value, so the merged id is the
// rating's id.
func Merge(t Title, r Rating) MovieRating {
	return MovieRating{
		ID:             r.ID,
		TitleType:      t.TitleType,
		PrimaryTitle:   t.PrimaryTitle,
		OriginalTitle:  t.OriginalTitle,
		IsAdult:        t.IsAdult,
		StartYear:      t.StartYear,
		EndYear:        t.EndYear,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         t.Genres,
		AverageRating:  r.AverageRating,
		NumVotes:       r.NumVotes,
	}
}

func keyField(rec Record, col string) string {
	s, _ := rec[col].(string)
	return s
}

func strField(rec Record, col string) *string {
	if s, ok := rec[col].(string); ok {
		return &s
	}
	return nil
}

func boolField(rec Record, col string) *bool {
	if b, ok := rec[col].(bool); ok {
		return &b
	}
	return nil
}

func intField(rec Record, col string) *int64 {
	if n, ok := rec[col].(int64); ok {
		return &n
	}
	return nil
}

func floatField(rec Record, col string) *float64 {
	if f, ok := rec[col].(float64); ok {
		return &f
	}
	return nil
}
