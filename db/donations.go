package db

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-foodmap/types"
)

const donationsCollection = "donations"

func donationDocID(id int) string {
	return strconv.Itoa(id)
}

// GetDonations retrieves every donation in the collection.
func GetDonations(client *firestore.Client) ([]*types.DonationRecord, error) {
	ctx := context.Background()
	var donations []*types.DonationRecord

	iter := client.Collection(donationsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating donations collection: %w", err)
		}

		var donation types.DonationRecord
		if err := doc.DataTo(&donation); err != nil {
			log.Printf("Warning: Error converting document %s to DonationRecord: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		donations = append(donations, &donation)
	}

	return donations, nil
}

// GetDonation retrieves a single donation by its ID.
func GetDonation(client *firestore.Client, donationID int) (types.DonationRecord, error) {
	ctx := context.Background()
	var donation types.DonationRecord

	doc, err := client.Collection(donationsCollection).Doc(donationDocID(donationID)).Get(ctx)
	if err != nil {
		return donation, fmt.Errorf("error getting donation %d: %w", donationID, err)
	}

	if err := doc.DataTo(&donation); err != nil {
		return donation, err
	}
	return donation, nil
}

// SaveDonation creates or overwrites a single donation document.
func SaveDonation(client *firestore.Client, donation types.DonationRecord) error {
	ctx := context.Background()
	_, err := client.Collection(donationsCollection).Doc(donationDocID(donation.ID)).Set(ctx, donation)
	if err != nil {
		return fmt.Errorf("error saving donation %d: %w", donation.ID, err)
	}
	return nil
}

// SaveDonations saves a slice of donations using BulkWriter for efficient
// non-transactional writes.
func SaveDonations(client *firestore.Client, donations []*types.DonationRecord) error {
	if len(donations) == 0 {
		log.Println("No donations to save.")
		return nil
	}

	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	collectionRef := client.Collection(donationsCollection)

	savedCount := 0
	for _, donation := range donations {
		if donation.ID == 0 {
			log.Printf("Warning: Skipping donation with no ID: %+v", donation)
			continue
		}
		docRef := collectionRef.Doc(donationDocID(donation.ID))
		if _, err := bw.Set(docRef, donation); err != nil {
			log.Printf("Error enqueueing donation %d for save: %v", donation.ID, err)
		} else {
			savedCount++
		}
	}

	if savedCount == 0 {
		log.Println("No valid donations were enqueued for saving.")
		return nil
	}

	// Flush sends any remaining writes and waits for them to complete.
	bw.Flush()
	log.Printf("BulkWriter flushed. Attempted to save %d donations.", savedCount)

	return nil
}

// ClaimDonation marks a donation as claimed by the given user. The read and
// write run in one transaction so two users cannot claim the same donation.
func ClaimDonation(client *firestore.Client, donationID, userID int) error {
	ctx := context.Background()
	docRef := client.Collection(donationsCollection).Doc(donationDocID(donationID))

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("donation %d not found", donationID)
			}
			return fmt.Errorf("error getting donation %d: %w", donationID, err)
		}

		var donation types.DonationRecord
		if err := doc.DataTo(&donation); err != nil {
			return err
		}
		if donation.IsClaimed {
			return fmt.Errorf("donation %d is already claimed", donationID)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "isClaimed", Value: true},
			{Path: "claimedBy", Value: userID},
		})
	})

	if err != nil {
		log.Printf("Claim transaction failed for donation %d: %v", donationID, err)
		return err
	}
	return nil
}

// DeleteDonation removes a donation document by its ID.
func DeleteDonation(client *firestore.Client, donationID int) (*firestore.WriteResult, error) {
	ctx := context.Background()
	docRef := client.Collection(donationsCollection).Doc(donationDocID(donationID))
	writeResult, err := docRef.Delete(ctx)
	if err != nil {
		return nil, fmt.Errorf("error deleting donation %d: %w", donationID, err)
	}
	return writeResult, nil
}

// GetDonationsMissingCoordinates returns donations that have a pickup
// location string but no stored latitude yet. These are the backfill
// candidates for the geocoding cron job.
func GetDonationsMissingCoordinates(client *firestore.Client) ([]*types.DonationRecord, error) {
	ctx := context.Background()

	docs, err := client.Collection(donationsCollection).
		Where("latitude", "==", nil).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	var candidates []*types.DonationRecord
	for _, doc := range docs {
		var donation types.DonationRecord
		if err := doc.DataTo(&donation); err != nil {
			log.Printf("Warning: Error converting document %s to DonationRecord: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		if donation.Location == "" {
			continue // nothing to geocode from
		}
		candidates = append(candidates, &donation)
	}

	return candidates, nil
}

// UpdateDonationCoordinates writes freshly geocoded coordinates back onto a
// donation document.
func UpdateDonationCoordinates(client *firestore.Client, donationID int, coords types.Coordinates) error {
	ctx := context.Background()
	docRef := client.Collection(donationsCollection).Doc(donationDocID(donationID))

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "latitude", Value: coords.Lat},
		{Path: "longitude", Value: coords.Lng},
	})
	if err != nil {
		return fmt.Errorf("error updating coordinates for donation %d: %w", donationID, err)
	}
	return nil
}

// DonationStore adapts the Firestore collection to the narrow listing
// interface the viewport tracker consumes.
type DonationStore struct {
	client *firestore.Client
}

func NewDonationStore(client *firestore.Client) *DonationStore {
	return &DonationStore{client: client}
}

func (s *DonationStore) ListDonations(_ context.Context) ([]*types.DonationRecord, error) {
	return GetDonations(s.client)
}
