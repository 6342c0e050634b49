package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           FIDUS Analytics API
// @version         0.1.0
// @description     Trade sync, daily and period performance, and fund analytics.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
