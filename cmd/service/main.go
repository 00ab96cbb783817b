// @title        Poker Log API
// @version      1.0
// @description  記錄個人撲克錦標賽參賽紀錄的後端 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"log"

	_ "poker-log/docs" // 引入 swag 產出的 docs
)

func main() {
	root := newRootCmd()
	root.SetArgs(cmdArgs())
	if err := root.Execute(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
