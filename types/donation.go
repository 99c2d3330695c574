package types

// FoodTypeOther is the bucket for donations that never got categorized.
const FoodTypeOther = "other"

// Coordinates is a plain lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Valid reports whether the pair is inside the physical lat/lng range.
// Out-of-range coordinates are treated the same as missing ones.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DonationRecord mirrors a donation document as the marketplace stores it.
// Latitude/Longitude are pointers because a donation may only carry a
// free-text address until geocoding fills the pair in.
type DonationRecord struct {
	ID          int      `json:"id" firestore:"id"`
	DonorID     int      `json:"donor_id,omitempty" firestore:"donorId"`
	DonorName   string   `json:"donor_name,omitempty" firestore:"donorName"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Quantity    int      `json:"quantity" firestore:"quantity"`
	Location    string   `json:"location" firestore:"location"`
	Latitude    *float64 `json:"latitude,omitempty" firestore:"latitude"`
	Longitude   *float64 `json:"longitude,omitempty" firestore:"longitude"`
	FoodType    string   `json:"food_type,omitempty" firestore:"foodType"`
	IsClaimed   bool     `json:"is_claimed" firestore:"isClaimed"`
	ClaimedBy   *int     `json:"claimed_by" firestore:"claimedBy"`
	CreatedAt   string   `json:"created_at" firestore:"createdAt"`
	ExpiryDate  string   `json:"expiry_date,omitempty" firestore:"expiryDate"`
}

// Coordinates returns the donation's position and whether it is usable
// for spatial work. Missing or out-of-range pairs report false.
func (d *DonationRecord) Coordinates() (Coordinates, bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return Coordinates{}, false
	}
	c := Coordinates{Lat: *d.Latitude, Lng: *d.Longitude}
	if !c.Valid() {
		return Coordinates{}, false
	}
	return c, true
}

// FoodTypeOrOther is the single defaulting rule for the category field.
func (d *DonationRecord) FoodTypeOrOther() string {
	if d.FoodType == "" {
		return FoodTypeOther
	}
	return d.FoodType
}

// SetCoordinates stores a resolved pair back on the record.
func (d *DonationRecord) SetCoordinates(c Coordinates) {
	lat, lng := c.Lat, c.Lng
	d.Latitude = &lat
	d.Longitude = &lng
}
