package services

// SampleManifest is a small demo manifest in the semicolon-delimited layout
// dispatch teams usually export. It is fed through the regular ingestion path
// so demos exercise the same code as real uploads.
const SampleManifest = `Código do Cliente;Nome do Cliente;CEP;Endereço;Prioridade
C001;Padaria do João;01310-100;Av. Paulista, 1000;Alta
C002;Mercado da Esquina;01302-000;Rua da Consolação, 500;Normal
C003;Tech Solutions;04551-060;Rua Funchal, 200;Normal
C004;Dona Maria;01304-001;Rua Augusta, 1500;Normal
C005;Escritório Central;01451-000;Av. Brigadeiro Faria Lima, 3000;Baixa
C006;Loja de Games;05425-070;Shopping Eldorado;Baixa
`
