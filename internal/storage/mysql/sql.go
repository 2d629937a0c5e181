package mysql

const insertHotelSQL = `
INSERT INTO hotels
  (title, description, image_url, latitude, longitude, price)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const getHotelSQL = `
SELECT id, title, description, image_url, latitude, longitude, price, created_at, updated_at
FROM hotels
WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

// List and update statements are assembled at call time: the WHERE clauses of
// the list query depend on which filters were supplied, and the SET clauses of
// the update depend on which fields the patch carries. See buildList and
// buildUpdate in repo.go.
const listHotelsPrefix = `
SELECT id, title, description, image_url, latitude, longitude, price, created_at, updated_at
FROM hotels
WHERE 1=1`

// Most recent first; backed by the (created_at, id) index.
const listHotelsSuffix = ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
