package main

import (
	_ "github.com/gogpu/textmesh/backend/headless"
)
