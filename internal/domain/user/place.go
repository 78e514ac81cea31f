package user

// 基础参照数据:城市、图书馆、书店
// 由启动时的建表逻辑播种默认数据，注册时选择从属关系，下单时选择出货书店

// City 城市
type City struct {
	ID   uint
	Name string
}

// Library 图书馆
type Library struct {
	ID      uint
	Name    string
	CityID  uint
	Address string
}

// Store 书店
type Store struct {
	ID      uint
	Name    string
	CityID  uint
	Address string
}
