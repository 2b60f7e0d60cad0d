package store

// Movie is one film known to the club. Identity for deduplication is the
// (title, year) pair; rows are never mutated after insertion.
type Movie struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Year    int     `json:"year"`
	Country string  `json:"country"`
	URL     *string `json:"url,omitempty"`
}

// Director identity is the exact (fname, mname, lname) triple; mname may be
// the empty string for two-word names.
type Director struct {
	ID    int64  `json:"id"`
	Fname string `json:"fname"`
	Mname string `json:"mname"`
	Lname string `json:"lname"`
}

// Host is the member presenting a session.
type Host struct {
	ID    int64  `json:"id"`
	Fname string `json:"fname"`
	Lname string `json:"lname"`
}

// Session is one concrete screening of a movie. HostID and Attendance are
// optional; ingestion never populates Attendance.
type Session struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	MovieID    int64  `json:"movie_id"`
	HostID     *int64 `json:"host_id,omitempty"`
	Attendance *int64 `json:"attendance,omitempty"`
}

// Credit links a movie to one of its directors with the 1-based billing
// order from the source data.
type Credit struct {
	MovieID    int64 `json:"movie_id"`
	DirectorID int64 `json:"director_id"`
	Ord        int   `json:"director_ord"`
}
