package user

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/user"
)

// PlacesUseCase 城市/图书馆/书店参照数据查询用例
// 注册选从属单位、下单选出货书店时使用
type PlacesUseCase struct {
	placeRepo user.PlaceRepository
}

// NewPlacesUseCase 创建参照数据用例
func NewPlacesUseCase(placeRepo user.PlaceRepository) *PlacesUseCase {
	return &PlacesUseCase{placeRepo: placeRepo}
}

// CityResponse 城市响应DTO
type CityResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PlaceResponse 图书馆/书店响应DTO
type PlaceResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	CityID  uint   `json:"city_id"`
	Address string `json:"address"`
}

// ListCities 全部城市
func (uc *PlacesUseCase) ListCities(ctx context.Context) ([]CityResponse, error) {
	cities, err := uc.placeRepo.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]CityResponse, len(cities))
	for i, c := range cities {
		list[i] = CityResponse{ID: c.ID, Name: c.Name}
	}
	return list, nil
}

// ListLibraries 图书馆列表(cityID=0查全部)
func (uc *PlacesUseCase) ListLibraries(ctx context.Context, cityID uint) ([]PlaceResponse, error) {
	libraries, err := uc.placeRepo.ListLibraries(ctx, cityID)
	if err != nil {
		return nil, err
	}
	list := make([]PlaceResponse, len(libraries))
	for i, l := range libraries {
		list[i] = PlaceResponse{ID: l.ID, Name: l.Name, CityID: l.CityID, Address: l.Address}
	}
	return list, nil
}

// ListStores 书店列表(cityID=0查全部)
func (uc *PlacesUseCase) ListStores(ctx context.Context, cityID uint) ([]PlaceResponse, error) {
	stores, err := uc.placeRepo.ListStores(ctx, cityID)
	if err != nil {
		return nil, err
	}
	list := make([]PlaceResponse, len(stores))
	for i, s := range stores {
		list[i] = PlaceResponse{ID: s.ID, Name: s.Name, CityID: s.CityID, Address: s.Address}
	}
	return list, nil
}
