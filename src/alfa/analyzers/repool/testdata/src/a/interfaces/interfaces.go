package interfaces

type FuncRepool func()
