package mysql

const createBookingsSQL = `
CREATE TABLE IF NOT EXISTS bookings (
  booking_id      VARCHAR(16)   NOT NULL PRIMARY KEY,
  hotel_id        VARCHAR(32)   NOT NULL,
  hotel_name      VARCHAR(255)  NOT NULL,
  hotel_location  VARCHAR(255)  NOT NULL,
  check_in        DATE          NOT NULL,
  check_out       DATE          NOT NULL,
  nights          INT           NOT NULL,
  guests          INT           NOT NULL,
  guest_name      VARCHAR(255)  NOT NULL,
  guest_email     VARCHAR(255)  NOT NULL,
  total_price     DECIMAL(12,2) NOT NULL,
  price_per_night DECIMAL(12,2) NOT NULL,
  status          VARCHAR(32)   NOT NULL,
  created_at      DATETIME      NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

// Booking ids are generated once; a duplicate insert is a collision and must fail.
const insertBookingSQL = `
INSERT INTO bookings
  (booking_id, hotel_id, hotel_name, hotel_location, check_in, check_out, nights, guests,
   guest_name, guest_email, total_price, price_per_night, status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT
  booking_id,
  hotel_id,
  hotel_name,
  hotel_location,
  DATE_FORMAT(check_in, '%Y-%m-%d'),
  DATE_FORMAT(check_out, '%Y-%m-%d'),
  nights,
  guests,
  guest_name,
  guest_email,
  total_price,
  price_per_night,
  status,
  created_at
FROM bookings
WHERE booking_id = ?
`
