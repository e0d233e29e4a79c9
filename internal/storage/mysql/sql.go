package mysql

const upsertCitySQL = `
INSERT INTO catalog_cities
  (city_key, position, is_default)
VALUES
  (?, ?, ?)
ON DUPLICATE KEY UPDATE
  position   = VALUES(position),
  is_default = VALUES(is_default),
  updated_at = CURRENT_TIMESTAMP
`

// Templates of a city are replaced wholesale on every upsert.
const deleteTemplatesSQL = `DELETE FROM hotel_templates WHERE city_key = ?`

const insertTemplatesPrefix = "INSERT INTO hotel_templates\n" +
	"  (city_key, id, position, name, location, distance, image, rating, reviews,\n" +
	"   room_type, bed_type, amenities, price, original_price, taxes, free_cancellation, stars, property_type)\nVALUES "

const templateRowPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Non-default cities first in match order; the default set last.
const listCitiesSQL = `
SELECT city_key, position, is_default
FROM catalog_cities
ORDER BY is_default, position, city_key
`

const listTemplatesSQL = `
SELECT
  city_key, id, name, location, distance, image, rating, reviews,
  room_type, bed_type, amenities, price, original_price, taxes,
  free_cancellation, stars, property_type
FROM hotel_templates
ORDER BY city_key, position
`
