package entities

// Group and Member are maintained by the member/group administration. Payments only
// reference them, they are read here to show names next to payments.

type Group struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
}

type Member struct {
	ID        uint   `gorm:"primarykey"`
	FirstName string `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	LastName  string `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}
