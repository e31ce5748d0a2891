// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// ClientState is the in-memory view of trips, vehicles and the sync status
// shared by the façade, the orchestrator and the UI. It is owned by the
// composition root. Getters return copies; every change wakes subscribers.
type ClientState struct {
	mu       sync.RWMutex
	trips    []models.Trip
	vehicles []models.Vehicle
	status   models.SyncStatus

	subsMu sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

func NewClientState() *ClientState {
	return &ClientState{
		trips:    []models.Trip{},
		vehicles: []models.Vehicle{},
		subs:     make(map[int]chan struct{}),
	}
}

func (s *ClientState) Trips() []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTrips(s.trips)
}

func (s *ClientState) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneVehicles(s.vehicles)
}

// Snapshot returns both collections in their cached form.
func (s *ClientState) Snapshot() models.CacheSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CacheSnapshot{Trips: cloneTrips(s.trips), Vehicles: cloneVehicles(s.vehicles)}
}

// SetSnapshot replaces both collections.
func (s *ClientState) SetSnapshot(snapshot models.CacheSnapshot) {
	s.mu.Lock()
	s.trips = cloneTrips(snapshot.Trips)
	s.vehicles = cloneVehicles(snapshot.Vehicles)
	s.mu.Unlock()
	s.notify()
}

func (s *ClientState) SetTrips(trips []models.Trip) {
	s.mu.Lock()
	s.trips = cloneTrips(trips)
	s.mu.Unlock()
	s.notify()
}

func (s *ClientState) SetVehicles(vehicles []models.Vehicle) {
	s.mu.Lock()
	s.vehicles = cloneVehicles(vehicles)
	s.mu.Unlock()
	s.notify()
}

func (s *ClientState) Trip(id string) (models.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.tripIndex(id); i >= 0 {
		return s.trips[i].Clone(), true
	}
	return models.Trip{}, false
}

func (s *ClientState) Vehicle(id string) (models.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.vehicleIndex(id); i >= 0 {
		return s.vehicles[i].Clone(), true
	}
	return models.Vehicle{}, false
}

// UpsertTrip replaces the trip with the same id or prepends a new one, the
// newest first like the backend lists them.
func (s *ClientState) UpsertTrip(trip models.Trip) {
	s.mu.Lock()
	if i := s.tripIndex(trip.ID); i >= 0 {
		s.trips[i] = trip.Clone()
	} else {
		s.trips = slices.Insert(s.trips, 0, trip.Clone())
	}
	s.mu.Unlock()
	s.notify()
}

func (s *ClientState) UpsertVehicle(vehicle models.Vehicle) {
	s.mu.Lock()
	if i := s.vehicleIndex(vehicle.ID); i >= 0 {
		s.vehicles[i] = vehicle.Clone()
	} else {
		s.vehicles = slices.Insert(s.vehicles, 0, vehicle.Clone())
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateTrip applies fn to the trip with id and returns the result.
func (s *ClientState) UpdateTrip(id string, fn func(*models.Trip)) (models.Trip, bool) {
	s.mu.Lock()
	i := s.tripIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Trip{}, false
	}
	fn(&s.trips[i])
	updated := s.trips[i].Clone()
	s.mu.Unlock()

	s.notify()
	return updated, true
}

func (s *ClientState) UpdateVehicle(id string, fn func(*models.Vehicle)) (models.Vehicle, bool) {
	s.mu.Lock()
	i := s.vehicleIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Vehicle{}, false
	}
	fn(&s.vehicles[i])
	updated := s.vehicles[i].Clone()
	s.mu.Unlock()

	s.notify()
	return updated, true
}

func (s *ClientState) RemoveTrip(id string) bool {
	s.mu.Lock()
	before := len(s.trips)
	s.trips = slices.DeleteFunc(s.trips, func(t models.Trip) bool { return t.ID == id })
	removed := len(s.trips) != before
	s.mu.Unlock()

	if removed {
		s.notify()
	}
	return removed
}

// RemoveVehicle drops the vehicle and its id from every trip.
func (s *ClientState) RemoveVehicle(id string) bool {
	s.mu.Lock()
	before := len(s.vehicles)
	s.vehicles = slices.DeleteFunc(s.vehicles, func(v models.Vehicle) bool { return v.ID == id })
	removed := len(s.vehicles) != before
	for i := range s.trips {
		s.trips[i].VehicleIDs = slices.DeleteFunc(s.trips[i].VehicleIDs, func(v string) bool { return v == id })
	}
	s.mu.Unlock()

	s.notify()
	return removed
}

// ReplaceTripID rewrites a reconciled placeholder to the server id in one
// step. If the server id is already present the placeholder entry is
// dropped, so ids stay unique.
func (s *ClientState) ReplaceTripID(oldID, newID string) {
	s.mu.Lock()
	if s.tripIndex(newID) >= 0 {
		s.trips = slices.DeleteFunc(s.trips, func(t models.Trip) bool { return t.ID == oldID })
	} else if i := s.tripIndex(oldID); i >= 0 {
		s.trips[i].ID = newID
	}
	s.mu.Unlock()
	s.notify()
}

// ReplaceVehicleID rewrites a reconciled vehicle placeholder, marks the
// vehicle synced and rewrites the id inside every trip's vehicle list.
func (s *ClientState) ReplaceVehicleID(oldID, newID string) {
	s.mu.Lock()
	if s.vehicleIndex(newID) >= 0 {
		s.vehicles = slices.DeleteFunc(s.vehicles, func(v models.Vehicle) bool { return v.ID == oldID })
	} else if i := s.vehicleIndex(oldID); i >= 0 {
		s.vehicles[i].ID = newID
		s.vehicles[i].SyncStatus = models.SyncStatusSynced
	}
	for i := range s.trips {
		for j, id := range s.trips[i].VehicleIDs {
			if id == oldID {
				s.trips[i].VehicleIDs[j] = newID
			}
		}
		s.trips[i].VehicleIDs = uniqueIDs(s.trips[i].VehicleIDs)
	}
	s.mu.Unlock()
	s.notify()
}

// SetVehicleSyncStatus tags one vehicle.
func (s *ClientState) SetVehicleSyncStatus(id string, status models.VehicleSyncStatus) {
	s.UpdateVehicle(id, func(v *models.Vehicle) { v.SyncStatus = status })
}

func (s *ClientState) SyncStatus() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// UpdateSyncStatus applies fn to the sync status.
func (s *ClientState) UpdateSyncStatus(fn func(*models.SyncStatus)) {
	s.mu.Lock()
	fn(&s.status)
	s.mu.Unlock()
	s.notify()
}

// Reset forgets all data, used after sign-out and account deletion.
func (s *ClientState) Reset() {
	s.mu.Lock()
	s.trips = []models.Trip{}
	s.vehicles = []models.Vehicle{}
	s.status = models.SyncStatus{}
	s.mu.Unlock()
	s.notify()
}

// Subscribe returns a channel that receives a signal after changes. Signals
// coalesce; the receiver is expected to re-read the state.
func (s *ClientState) Subscribe() (<-chan struct{}, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *ClientState) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *ClientState) tripIndex(id string) int {
	return slices.IndexFunc(s.trips, func(t models.Trip) bool { return t.ID == id })
}

func (s *ClientState) vehicleIndex(id string) int {
	return slices.IndexFunc(s.vehicles, func(v models.Vehicle) bool { return v.ID == id })
}

func cloneTrips(trips []models.Trip) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.Clone())
	}
	return out
}

func cloneVehicles(vehicles []models.Vehicle) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.Clone())
	}
	return out
}

// uniqueIDs drops repeated ids keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	return slices.DeleteFunc(ids, func(id string) bool {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
		return false
	})
}
