package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/jackc/pgx/v5"
)

type PropertyRepository interface {
	// Create assigns property and address ids and links amenities by name.
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	SetActive(ctx context.Context, id string, active bool) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Property, error)
	Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	ListAmenities(ctx context.Context) ([]domain.Amenity, error)
}

type PGPropertyRepository struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &PGPropertyRepository{db: db}
}

const propertySelect = `SELECT p.id, p.host_id, p.title, p.description, p.price_cents, p.max_guests, p.bedrooms, p.bathrooms, p.active, p.created_at,
	a.id, a.street, a.city, a.country, a.zip_code,
	ARRAY(SELECT am.name FROM property_amenities pa JOIN amenities am ON am.id = pa.amenity_id
		WHERE pa.property_id = p.id ORDER BY am.name) AS amenities
	FROM properties p JOIN addresses a ON a.id = p.address_id`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(&p.ID, &p.HostID, &p.Title, &p.Description, &p.PriceCents, &p.MaxGuests, &p.Bedrooms, &p.Bathrooms, &p.Active, &p.CreatedAt,
		&p.Address.ID, &p.Address.Street, &p.Address.City, &p.Address.Country, &p.Address.ZipCode,
		&p.Amenities)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		addressID, err := nextID(ctx, tx, ids.PrefixAddress)
		if err != nil {
			return err
		}
		propertyID, err := nextID(ctx, tx, ids.PrefixProperty)
		if err != nil {
			return err
		}

		a := property.Address
		if _, err := tx.Exec(ctx, `INSERT INTO addresses (id, street, city, country, zip_code) VALUES ($1, $2, $3, $4, $5)`,
			addressID, a.Street, a.City, a.Country, a.ZipCode); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `INSERT INTO properties (id, host_id, address_id, title, description, price_cents, max_guests, bedrooms, bathrooms, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
			RETURNING created_at`,
			propertyID, property.HostID, addressID, property.Title, property.Description,
			property.PriceCents, property.MaxGuests, property.Bedrooms, property.Bathrooms).Scan(&property.CreatedAt); err != nil {
			return err
		}
		if err := linkAmenities(ctx, tx, propertyID, property.Amenities); err != nil {
			return err
		}

		property.ID = propertyID
		property.Address.ID = addressID
		property.Active = true
		return nil
	})
}

func (r *PGPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var addressID string
		err := tx.QueryRow(ctx, `UPDATE properties SET title=$1, description=$2, price_cents=$3, max_guests=$4, bedrooms=$5, bathrooms=$6
			WHERE id=$7
			RETURNING address_id`,
			property.Title, property.Description, property.PriceCents, property.MaxGuests, property.Bedrooms, property.Bathrooms, property.ID).
			Scan(&addressID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return notFound("property", property.ID)
			}
			return err
		}

		a := property.Address
		if _, err := tx.Exec(ctx, `UPDATE addresses SET street=$1, city=$2, country=$3, zip_code=$4 WHERE id=$5`,
			a.Street, a.City, a.Country, a.ZipCode, addressID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM property_amenities WHERE property_id=$1`, property.ID); err != nil {
			return err
		}
		if err := linkAmenities(ctx, tx, property.ID, property.Amenities); err != nil {
			return err
		}
		property.Address.ID = addressID
		return nil
	})
}

// linkAmenities rejects the whole write when any name is not a known amenity.
func linkAmenities(ctx context.Context, tx pgx.Tx, propertyID string, names []string) error {
	unique := dedupe(names)
	if len(unique) == 0 {
		return nil
	}
	tag, err := tx.Exec(ctx, `INSERT INTO property_amenities (property_id, amenity_id)
		SELECT $1, id FROM amenities WHERE name = ANY($2)`, propertyID, unique)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(unique)) {
		return fmt.Errorf("%w: unknown amenity in %v", domain.ErrInvalidInput, unique)
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func (r *PGPropertyRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("property", id)
	}
	return nil
}

func (r *PGPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, propertySelect+` WHERE p.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("property", id)
		}
		return nil, classify(err)
	}
	return p, nil
}

func (r *PGPropertyRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	rows, err := r.db.Query(ctx, propertySelect+` WHERE p.host_id=$1 AND p.active ORDER BY p.id`, hostID)
	if err != nil {
		return nil, classify(err)
	}
	return collectProperties(rows)
}

func (r *PGPropertyRepository) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	rows, err := r.db.Query(ctx, propertySelect+`
		WHERE p.active
		AND a.city ILIKE '%' || $1::text || '%' ESCAPE '\'
		AND p.max_guests >= $2
		AND ($3::date IS NULL OR NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.property_id = p.id AND b.status = ANY($5) AND b.check_in < $4::date AND b.check_out > $3::date))
		ORDER BY p.price_cents, p.id`,
		escapeLike(filter.City), filter.MinGuests, filter.CheckIn, filter.CheckOut, statusStrings(domain.BlockingStatuses()))
	if err != nil {
		return nil, classify(err)
	}
	return collectProperties(rows)
}

func collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, classify(err)
		}
		properties = append(properties, *p)
	}
	return properties, classify(rows.Err())
}

func (r *PGPropertyRepository) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, icon_path FROM amenities ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	amenities := make([]domain.Amenity, 0)
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.IconPath); err != nil {
			return nil, classify(err)
		}
		amenities = append(amenities, a)
	}
	return amenities, classify(rows.Err())
}

var _ PropertyRepository = (*PGPropertyRepository)(nil)
